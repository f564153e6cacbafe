package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreTests exercises the Store contract against any implementation.
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("SaveAssignsSequenceAndTimestamp", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		cp := New("t1", "a", []byte(`{"v":1}`), "b")
		require.NoError(t, store.Save(cp))
		assert.Equal(t, 1, cp.Sequence)
		assert.False(t, cp.Timestamp.IsZero())

		cp2 := New("t1", "b", []byte(`{"v":2}`), "__end__")
		require.NoError(t, store.Save(cp2))
		assert.Equal(t, 2, cp2.Sequence)
	})

	t.Run("SequencesArePerThread", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("t1", "a", []byte(`{}`), "b")))
		other := New("t2", "a", []byte(`{}`), "b")
		require.NoError(t, store.Save(other))
		assert.Equal(t, 1, other.Sequence)
	})

	t.Run("Latest", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("t1", "a", []byte(`{"v":1}`), "b")))
		require.NoError(t, store.Save(New("t1", "b", []byte(`{"v":2}`), "__end__")))

		latest, err := store.Latest("t1")
		require.NoError(t, err)
		assert.Equal(t, "b", latest.NodeID)
		assert.Equal(t, 2, latest.Sequence)
		assert.JSONEq(t, `{"v":2}`, string(latest.State))
	})

	t.Run("Latest_UnknownThread", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		_, err := store.Latest("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Get", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("t1", "a", []byte(`{"v":1}`), "b")))
		require.NoError(t, store.Save(New("t1", "b", []byte(`{"v":2}`), "__end__")))

		cp, err := store.Get("t1", 1)
		require.NoError(t, err)
		assert.Equal(t, "a", cp.NodeID)

		_, err = store.Get("t1", 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("t1", "a", []byte(`{"v":1}`), "b")))
		interrupted := New("t1", "b", []byte(`{"v":2}`), "b").WithInterrupt("help")
		require.NoError(t, store.Save(interrupted))

		infos, err := store.List("t1")
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "a", infos[0].NodeID)
		assert.False(t, infos[0].Interrupted)
		assert.Equal(t, "b", infos[1].NodeID)
		assert.True(t, infos[1].Interrupted)
		assert.Equal(t, int64(len(`{"v":2}`)), infos[1].Size)
	})

	t.Run("List_UnknownThread", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		infos, err := store.List("ghost")
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("InterruptRoundTrip", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		cp := New("t1", "ask", []byte(`{}`), "ask").
			WithPrevNode("call_model").
			WithInterrupt("need a human")
		require.NoError(t, store.Save(cp))

		loaded, err := store.Latest("t1")
		require.NoError(t, err)
		assert.Equal(t, "ask", loaded.NextNode)
		assert.Equal(t, "call_model", loaded.PrevNodeID)
		assert.True(t, loaded.Interrupted)
		assert.Equal(t, "need a human", loaded.InterruptQuery)
		assert.Equal(t, Version, loaded.Version)
	})

	t.Run("DeleteThread", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.Save(New("t1", "a", []byte(`{}`), "b")))
		require.NoError(t, store.Save(New("t2", "a", []byte(`{}`), "b")))

		require.NoError(t, store.DeleteThread("t1"))

		_, err := store.Latest("t1")
		assert.ErrorIs(t, err, ErrNotFound)

		// Other threads are untouched.
		_, err = store.Latest("t2")
		assert.NoError(t, err)
	})

	t.Run("DeleteThread_Unknown", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		assert.NoError(t, store.DeleteThread("ghost"))
	})

	t.Run("Closed", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Close())

		err := store.Save(New("t1", "a", []byte(`{}`), "b"))
		assert.ErrorIs(t, err, ErrStoreClosed)

		_, err = store.Latest("t1")
		assert.ErrorIs(t, err, ErrStoreClosed)
	})
}
