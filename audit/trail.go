// Package audit records the operations an agent performs, in order.
package audit

import "time"

// Action identifies the kind of operation a Record describes.
type Action string

const (
	ActionStore    Action = "store"
	ActionRetrieve Action = "retrieve"
	ActionNotify   Action = "notify"
)

// Record is a single audited operation. Failed operations carry the error
// text in Detail and set Failed.
type Record struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Key       string    `json:"key,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Trail holds an ordered sequence of records. Implementations must be safe
// for concurrent use.
type Trail interface {
	// ID returns the unique trail identifier.
	ID() string
	// Record appends r, assigning its ID and Timestamp when unset, and
	// returns the stored record.
	Record(r Record) Record
	// Records returns a defensive copy of the trail.
	Records() []Record
	// Clear resets the trail.
	Clear()
}
