package checkpoint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore runs the Store contract suite.
func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

// TestMemoryStore_Isolation tests that stored checkpoints cannot be
// mutated through the caller's references.
func TestMemoryStore_Isolation(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	state := []byte(`{"v":1}`)
	cp := New("t1", "a", state, "b")
	require.NoError(t, store.Save(cp))

	// Mutating the caller's buffer must not affect the stored copy.
	state[5] = '9'

	loaded, err := store.Latest("t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(loaded.State))

	// Mutating a loaded checkpoint must not affect subsequent loads.
	loaded.NodeID = "tampered"
	again, err := store.Latest("t1")
	require.NoError(t, err)
	assert.Equal(t, "a", again.NodeID)
}

// TestMemoryStore_ConcurrentSaves tests concurrent appends to distinct
// threads.
func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	var wg sync.WaitGroup
	for _, threadID := range []string{"t1", "t2", "t3", "t4"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = store.Save(New(id, "a", []byte(`{}`), "b"))
			}
		}(threadID)
	}
	wg.Wait()

	for _, threadID := range []string{"t1", "t2", "t3", "t4"} {
		infos, err := store.List(threadID)
		require.NoError(t, err)
		require.Len(t, infos, 25)
		for i, info := range infos {
			assert.Equal(t, i+1, info.Sequence)
		}
	}
}
