package exchange

// Config holds configuration for the surplus reconciliation.
type Config struct {
	// PerVariant computes surplus per card variant instead of summing
	// variants together. With it enabled, owning two foils and zero normals
	// of a card the other owner lacks qualifies the foil surplus on its own.
	PerVariant bool `mapstructure:"per_variant" default:"false"`
}
