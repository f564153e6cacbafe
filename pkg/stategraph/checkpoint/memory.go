package checkpoint

import (
	"sync"
	"time"
)

// MemoryStore keeps checkpoints in process memory. Threads survive
// across runs within one process and are lost on exit, matching the
// lifetime of an in-memory saver.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]*Checkpoint // threadID -> checkpoints ordered by sequence
	closed  bool
}

// NewMemoryStore creates an empty in-memory checkpoint store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		threads: make(map[string][]*Checkpoint),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(cp *Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	stored := *cp
	stored.State = append([]byte(nil), cp.State...)
	stored.Sequence = len(m.threads[cp.ThreadID]) + 1
	stored.Timestamp = time.Now().UTC()

	m.threads[cp.ThreadID] = append(m.threads[cp.ThreadID], &stored)

	cp.Sequence = stored.Sequence
	cp.Timestamp = stored.Timestamp
	return nil
}

// Latest implements Store.
func (m *MemoryStore) Latest(threadID string) (*Checkpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	cps := m.threads[threadID]
	if len(cps) == 0 {
		return nil, ErrNotFound
	}
	return copyCheckpoint(cps[len(cps)-1]), nil
}

// Get implements Store.
func (m *MemoryStore) Get(threadID string, sequence int) (*Checkpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	for _, cp := range m.threads[threadID] {
		if cp.Sequence == sequence {
			return copyCheckpoint(cp), nil
		}
	}
	return nil, ErrNotFound
}

// List implements Store.
func (m *MemoryStore) List(threadID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	cps := m.threads[threadID]
	infos := make([]Info, 0, len(cps))
	for _, cp := range cps {
		infos = append(infos, Info{
			ThreadID:    cp.ThreadID,
			NodeID:      cp.NodeID,
			Sequence:    cp.Sequence,
			Timestamp:   cp.Timestamp,
			Size:        int64(len(cp.State)),
			Interrupted: cp.Interrupted,
		})
	}
	return infos, nil
}

// DeleteThread implements Store.
func (m *MemoryStore) DeleteThread(threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.threads, threadID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.threads = nil
	return nil
}

// copyCheckpoint returns a deep copy so callers cannot mutate stored data.
func copyCheckpoint(cp *Checkpoint) *Checkpoint {
	out := *cp
	out.State = append([]byte(nil), cp.State...)
	return &out
}
