// Package corpus keeps every first-idea submission for the life of the process
package corpus

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded submission, Text is stored verbatim
type Entry struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Accumulator is an append only, mutex guarded list of entries
// nothing on the analyze path reads it back
type Accumulator struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// New returns an empty accumulator
func New() *Accumulator {
	return &Accumulator{now: time.Now}
}

// Append records raw and returns the stored entry
func (a *Accumulator) Append(raw string) Entry {
	e := Entry{ID: uuid.New(), Text: raw, At: a.now().UTC()}
	a.mu.Lock()
	a.entries = append(a.entries, e)
	a.mu.Unlock()
	return e
}

// Len returns the number of recorded entries
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Snapshot returns a copy of the entries in append order
func (a *Accumulator) Snapshot() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}
