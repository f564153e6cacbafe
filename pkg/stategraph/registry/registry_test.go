package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistry_RegisterGet tests basic storage and lookup.
func TestRegistry_RegisterGet(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)

	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.True(t, r.Has("b"))
	assert.False(t, r.Has("missing"))
	assert.Equal(t, 2, r.Len())
}

// TestRegistry_RegisterReplaces tests that re-registering overwrites.
func TestRegistry_RegisterReplaces(t *testing.T) {
	r := New[string, string]()
	r.Register("tool", "v1")
	r.Register("tool", "v2")

	v, _ := r.Get("tool")
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, r.Len())
}

// TestRegistry_Unregister tests removal.
func TestRegistry_Unregister(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)

	r.Unregister("a")
	assert.False(t, r.Has("a"))

	// Removing an absent key is a no-op.
	r.Unregister("ghost")
	assert.Equal(t, 0, r.Len())
}

// TestRegistry_Keys tests key enumeration.
func TestRegistry_Keys(t *testing.T) {
	r := New[string, int]()
	r.Register("internet_search", 1)
	r.Register("change_mood", 2)

	assert.ElementsMatch(t, []string{"internet_search", "change_mood"}, r.Keys())
}

// TestRegistry_Concurrent tests concurrent mixed access.
func TestRegistry_Concurrent(t *testing.T) {
	r := New[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Register(n*100+j, j)
				r.Get(n * 100)
				r.Has(j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, r.Len())
}
