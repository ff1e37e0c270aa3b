package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/tailored-agentic-units/sovereign/audit"
	"github.com/tailored-agentic-units/sovereign/notify"
)

// Config holds initialization parameters for an agent and its subsystems.
// Each subsystem section delegates to that subsystem's Config.
type Config struct {
	Scheme    string        `json:"scheme,omitempty"`    // Identity scheme: "did" (default) or "nostr".
	Notify    notify.Config `json:"notify"`
	Audit     audit.Config  `json:"audit"`
	Observers []string      `json:"observers,omitempty"` // Registered observer names; empty selects "slog".
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Notify: notify.DefaultConfig(),
		Audit:  audit.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Notify.Merge(&source.Notify)
	c.Audit.Merge(&source.Audit)
	if source.Scheme != "" {
		c.Scheme = source.Scheme
	}
	if len(source.Observers) > 0 {
		c.Observers = source.Observers
	}
}

// LoadConfig reads a JSON or YAML (.yaml, .yml) config file, merges it with
// defaults, and returns the resulting Config. Unknown fields are rejected.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data, err = toJSON(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var loaded Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// toJSON converts YAML documents to JSON so both formats share the strict
// JSON decoder. Other extensions pass through unchanged.
func toJSON(filename string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if v == nil {
		return []byte("{}"), nil
	}

	j, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml to json: %w", err)
	}
	return j, nil
}

func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		for k, v := range x {
			x[k] = normalizeYAML(v)
		}
		return x
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}
