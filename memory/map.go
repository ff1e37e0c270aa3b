package memory

import (
	"sort"
	"strings"
	"sync"
)

// Map is the in-memory Store. Writers hold the lock exclusively; readers
// share it. All methods are safe for concurrent use.
type Map struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{
		entries: make(map[string]string),
	}
}

func (m *Map) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.entries[key]
	return val, ok
}

func (m *Map) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
}

func (m *Map) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

func (m *Map) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[key]
	return ok
}

func (m *Map) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Map) Entries(prefix string) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for key, val := range m.entries {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{Key: key, Value: val})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}
