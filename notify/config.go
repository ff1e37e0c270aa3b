package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is a public echo service, suitable for manual testing only.
	DefaultEndpoint = "https://httpbin.org/post"
	defaultTimeout  = 10 * time.Second

	// DefaultMaxResponseBytes caps how much of a response body Send reads.
	DefaultMaxResponseBytes = 1 << 20
)

// Config holds notification client parameters.
type Config struct {
	Endpoint  string   `json:"endpoint,omitempty"`
	Timeout   Duration `json:"timeout,omitempty"` // Overall bound on one Send, including the body read.
	UserAgent string   `json:"user_agent,omitempty"`

	MaxResponseBytes int64 `json:"max_response_bytes,omitempty"` // Larger bodies fail with KindDecode.
}

// DefaultConfig returns the default notification configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   Duration(defaultTimeout),
		UserAgent: "sovereign-agent",

		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Endpoint != "" {
		c.Endpoint = source.Endpoint
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
	if source.UserAgent != "" {
		c.UserAgent = source.UserAgent
	}
	if source.MaxResponseBytes > 0 {
		c.MaxResponseBytes = source.MaxResponseBytes
	}
}

// Duration is a time.Duration that reads either a Go duration string ("5s")
// or an integer count of nanoseconds from JSON.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		if v < 0 {
			return fmt.Errorf("duration must be >= 0: %v", v)
		}
		*d = Duration(time.Duration(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		if parsed < 0 {
			return fmt.Errorf("duration must be >= 0: %q", v)
		}
		*d = Duration(parsed)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
