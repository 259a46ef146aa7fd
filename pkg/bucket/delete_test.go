package bucket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/bucketkit/pkg/store"
)

func TestDeleteAll_DeletesAndCounts(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("tmp/a.txt", 1)
	fs.addObject("tmp/b.txt", 1)
	fs.addObject("keep/c.txt", 1)

	c := New(fs, DefaultConfig())

	deleted, err := c.DeleteAll(context.Background(), "test-bucket", []string{"tmp/a.txt", "tmp/b.txt"})
	require.NoError(t, err)

	assert.Equal(t, 2, deleted)
	assert.Equal(t, 1, fs.deleteCalls)

	// Untouched objects survive.
	_, exists := fs.objects["keep/c.txt"]
	assert.True(t, exists)
	_, exists = fs.objects["tmp/a.txt"]
	assert.False(t, exists)
}

func TestDeleteAll_EmptyKeysIsNoOp(t *testing.T) {
	fs := newFakeStore()

	c := New(fs, DefaultConfig())

	deleted, err := c.DeleteAll(context.Background(), "test-bucket", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, deleted)
	// No round trip for an empty key set.
	assert.Equal(t, 0, fs.deleteCalls)
}

func TestDeleteAll_SingleCall(t *testing.T) {
	fs := newFakeStore()
	keys := make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		key := "tmp/" + string(rune('a'+i%26)) + ".txt"
		keys = append(keys, key)
	}

	c := New(fs, DefaultConfig())

	_, err := c.DeleteAll(context.Background(), "test-bucket", keys)
	require.NoError(t, err)

	// All keys go out in one batch regardless of count.
	assert.Equal(t, 1, fs.deleteCalls)
}

func TestDeleteAll_PartialFailureObservableOnlyThroughCount(t *testing.T) {
	fs := newFakeStore()
	fs.deleteFn = func(keys []string) (*store.DeleteResult, error) {
		// Two of three confirmed; one per-key failure.
		return &store.DeleteResult{
			Deleted: []string{"tmp/a.txt", "tmp/b.txt"},
			Errors: []store.DeleteError{
				{Key: "tmp/c.txt", Code: "AccessDenied", Message: "no"},
			},
		}, nil
	}

	c := New(fs, DefaultConfig())

	deleted, err := c.DeleteAll(context.Background(), "test-bucket", []string{"tmp/a.txt", "tmp/b.txt", "tmp/c.txt"})
	require.NoError(t, err)

	// The count is the confirmed subset; the failure is not an error.
	assert.Equal(t, 2, deleted)
}

func TestDeleteAll_RequestFailure(t *testing.T) {
	fs := newFakeStore()
	boom := errors.New("delete request failed")
	fs.deleteFn = func(keys []string) (*store.DeleteResult, error) {
		return nil, boom
	}

	c := New(fs, DefaultConfig())

	deleted, err := c.DeleteAll(context.Background(), "test-bucket", []string{"tmp/a.txt"})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, deleted)
}

func TestDeleteAll_NonexistentKeysStillCounted(t *testing.T) {
	fs := newFakeStore()

	c := New(fs, DefaultConfig())

	// S3 semantics: deleting a missing key is confirmed as deleted.
	deleted, err := c.DeleteAll(context.Background(), "test-bucket", []string{"never/was.txt"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}
