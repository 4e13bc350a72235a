package bleveindex

// Config holds the settings for the bleve-backed search index.
type Config struct {
	// Path is the on-disk location of the index. Empty runs the index
	// in memory, which is what tests and ephemeral deployments use.
	Path string `yaml:"path" envconfig:"SEARCH_INDEX_PATH"`

	// DefaultLimit caps query hits when a request does not set a limit.
	//
	// Default: 10
	DefaultLimit int `yaml:"default_limit" envconfig:"SEARCH_INDEX_DEFAULT_LIMIT"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
	}
}
