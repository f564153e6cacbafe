// Package checkpoint provides thread-keyed persistence of workflow
// state. A thread is one conversation: every Save appends a snapshot
// with the next sequence number, and Latest is what Resume builds on.
package checkpoint

import (
	"errors"
	"time"
)

// Store persists checkpoints. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save appends cp to its thread, assigning the next sequence
	// number (starting at 1) and the save timestamp.
	Save(cp *Checkpoint) error

	// Latest returns the highest-sequence checkpoint for a thread.
	// Returns ErrNotFound if the thread has no checkpoints.
	Latest(threadID string) (*Checkpoint, error)

	// Get returns the checkpoint at a specific sequence.
	// Returns ErrNotFound if it doesn't exist.
	Get(threadID string, sequence int) (*Checkpoint, error)

	// List returns metadata for all checkpoints of a thread, ordered
	// by sequence. Returns an empty slice (not an error) for an
	// unknown thread.
	List(threadID string) ([]Info, error)

	// DeleteThread removes every checkpoint of a thread.
	// Returns nil if the thread has none.
	DeleteThread(threadID string) error

	// Close releases any resources.
	Close() error
}

// Info is checkpoint metadata without the state payload.
type Info struct {
	ThreadID    string
	NodeID      string
	Sequence    int
	Timestamp   time.Time
	Size        int64
	Interrupted bool
}

// Sentinel errors for checkpoint operations.
var (
	// ErrNotFound indicates the requested checkpoint doesn't exist.
	ErrNotFound = errors.New("checkpoint not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("checkpoint store closed")
)
