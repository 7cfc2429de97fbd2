package catalog

// SyncConfig holds configuration for the catalog import job.
type SyncConfig struct {
	// BaseURL is the root of the Lorcast API.
	BaseURL string `mapstructure:"base_url" default:"https://api.lorcast.com/v0"`
	// ThrottleMillis is the pause between set fetches (upstream rate limit).
	ThrottleMillis int `mapstructure:"throttle_millis" default:"90"`
	// MirrorImages enables copying card scans into the storage bucket.
	MirrorImages bool `mapstructure:"mirror_images" default:"false"`
}
