package audit

const defaultLimit = 1000

// Config holds audit trail initialization parameters.
type Config struct {
	Limit int `json:"limit,omitempty"` // Maximum retained records; 0 keeps the default.
}

// DefaultConfig returns the default audit configuration.
func DefaultConfig() Config {
	return Config{Limit: defaultLimit}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Limit > 0 {
		c.Limit = source.Limit
	}
}

// New creates a Trail from configuration.
func New(cfg *Config) Trail {
	return NewMemoryTrail(cfg.Limit)
}
