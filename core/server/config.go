package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Pin is the access code required by the PIN gate. Empty disables the gate.
	Pin string `mapstructure:"pin" default:""`
	// OwnerA is the identifier of the first tracked collector.
	OwnerA string `mapstructure:"owner_a" default:"adrien"`
	// OwnerB is the identifier of the second tracked collector.
	OwnerB string `mapstructure:"owner_b" default:"angele"`
}

// HasValidOwners checks that both tracked owners are configured and distinct.
func (c Config) HasValidOwners() bool {
	return c.OwnerA != "" && c.OwnerB != "" && c.OwnerA != c.OwnerB
}
