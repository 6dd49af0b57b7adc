package roles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionStore_PutAndTake(t *testing.T) {
	store := newSelectionStore()

	store.put("msg1", "user1", []int64{1, 2, 3})

	roleIDs, ok := store.take("msg1", "user1")
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, roleIDs)

	// A selection can only be consumed once.
	_, ok = store.take("msg1", "user1")
	assert.False(t, ok)
}

func TestSelectionStore_KeyedByMessageAndUser(t *testing.T) {
	store := newSelectionStore()

	store.put("msg1", "user1", []int64{1})
	store.put("msg1", "user2", []int64{2})
	store.put("msg2", "user1", []int64{3})

	roleIDs, ok := store.take("msg1", "user2")
	require.True(t, ok)
	assert.Equal(t, []int64{2}, roleIDs)

	roleIDs, ok = store.take("msg1", "user1")
	require.True(t, ok)
	assert.Equal(t, []int64{1}, roleIDs)
}

func TestSelectionStore_ReselectReplaces(t *testing.T) {
	store := newSelectionStore()

	store.put("msg1", "user1", []int64{1, 2})
	store.put("msg1", "user1", []int64{3})

	roleIDs, ok := store.take("msg1", "user1")
	require.True(t, ok)
	assert.Equal(t, []int64{3}, roleIDs)
}

func TestSelectionStore_EmptySelectionIsValid(t *testing.T) {
	store := newSelectionStore()

	store.put("msg1", "user1", []int64{})

	roleIDs, ok := store.take("msg1", "user1")
	require.True(t, ok)
	assert.Empty(t, roleIDs)
}

func TestSelectionStore_ExpiredEntriesDropped(t *testing.T) {
	store := newSelectionStore()

	store.put("msg1", "user1", []int64{1})
	store.entries[selectionKey("msg1", "user1")].timestamp = time.Now().Add(-selectionTTL - time.Minute)

	_, ok := store.take("msg1", "user1")
	assert.False(t, ok)
}

func TestSelectionStore_Cleanup(t *testing.T) {
	store := newSelectionStore()

	store.put("old", "user1", []int64{1})
	store.put("fresh", "user1", []int64{2})
	store.entries[selectionKey("old", "user1")].timestamp = time.Now().Add(-selectionTTL - time.Minute)

	store.cleanup()

	assert.Len(t, store.entries, 1)
	_, ok := store.take("fresh", "user1")
	assert.True(t, ok)
}
