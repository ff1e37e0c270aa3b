package audit

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryTrail struct {
	id      string
	records []Record
	limit   int
	mu      sync.RWMutex
}

// NewMemoryTrail creates a Trail backed by an in-memory slice. A positive
// limit bounds the trail; the oldest records are dropped first.
func NewMemoryTrail(limit int) Trail {
	return &memoryTrail{
		id:    uuid.Must(uuid.NewV7()).String(),
		limit: limit,
	}
}

func (t *memoryTrail) ID() string {
	return t.id
}

func (t *memoryTrail) Record(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.Must(uuid.NewV7()).String()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = append(t.records, r)
	if t.limit > 0 && len(t.records) > t.limit {
		t.records = slices.Clone(t.records[len(t.records)-t.limit:])
	}
	return r
}

func (t *memoryTrail) Records() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.records)
}

func (t *memoryTrail) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = nil
}
