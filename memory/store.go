// Package memory provides the agent-owned key-value store. Values live only
// in process memory and are discarded with the owning agent.
package memory

// Store is a string key-value mapping. Implementations must be safe for
// concurrent use: a Get that follows a Set for the same key observes the
// written value, and no Get observes a partially written one.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set inserts or overwrites the value for key.
	Set(key, value string)
	// Delete removes key. Missing keys are ignored.
	Delete(key string)
	// Has reports whether key is present.
	Has(key string) bool
	// Keys returns all present keys in sorted order.
	Keys() []string
	// Len returns the number of entries.
	Len() int
	// Entries returns a sorted snapshot of entries whose key has prefix.
	Entries(prefix string) []Entry
}

// Lookup returns the value for key, or ErrKeyNotFound when it is absent.
func Lookup(s Store, key string) (string, error) {
	val, ok := s.Get(key)
	if !ok {
		return "", &KeyError{Key: key}
	}
	return val, nil
}
