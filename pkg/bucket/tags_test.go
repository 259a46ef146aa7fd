package bucket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/bucketkit/pkg/store"
)

func TestAddTag_AppendsToExisting(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.tags["data/a.txt"] = []store.Tag{{Key: "owner", Value: "ops"}}

	c := New(fs, DefaultConfig())

	err := c.AddTag(context.Background(), "test-bucket", []string{"data/"}, store.Tag{Key: "tier", Value: "archive"})
	require.NoError(t, err)

	assert.Equal(t, []store.Tag{
		{Key: "owner", Value: "ops"},
		{Key: "tier", Value: "archive"},
	}, fs.tags["data/a.txt"])
}

func TestAddTag_NoDeduplication(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.tags["data/a.txt"] = []store.Tag{{Key: "tier", Value: "hot"}}

	c := New(fs, DefaultConfig())

	// Adding a tag whose key already exists leaves both entries.
	err := c.AddTag(context.Background(), "test-bucket", []string{"data/"}, store.Tag{Key: "tier", Value: "archive"})
	require.NoError(t, err)

	assert.Equal(t, []store.Tag{
		{Key: "tier", Value: "hot"},
		{Key: "tier", Value: "archive"},
	}, fs.tags["data/a.txt"])
}

func TestAddTag_CoversAllMatchedObjects(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.addObject("data/b.txt", 1)
	fs.addObject("other/c.txt", 1)

	c := New(fs, DefaultConfig())

	err := c.AddTag(context.Background(), "test-bucket", []string{"data/"}, store.Tag{Key: "tier", Value: "cold"})
	require.NoError(t, err)

	assert.Len(t, fs.tags["data/a.txt"], 1)
	assert.Len(t, fs.tags["data/b.txt"], 1)
	assert.Empty(t, fs.tags["other/c.txt"])
}

func TestAddTag_ListFailureAborts(t *testing.T) {
	fs := newFakeStore()
	boom := errors.New("list failed")
	fs.listErr["data/"] = boom

	c := New(fs, DefaultConfig())

	err := c.AddTag(context.Background(), "test-bucket", []string{"data/"}, store.Tag{Key: "t", Value: "v"})
	assert.ErrorIs(t, err, boom)
}

func TestAddTag_PartialFailureLeavesEarlierMutations(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.addObject("data/b.txt", 1)
	boom := errors.New("tagging denied")
	fs.putTagErr["data/b.txt"] = boom

	c := New(fs, DefaultConfig())

	err := c.AddTag(context.Background(), "test-bucket", []string{"data/"}, store.Tag{Key: "tier", Value: "cold"})
	require.ErrorIs(t, err, boom)

	// The first object was mutated before the failure; the second was not.
	assert.Len(t, fs.tags["data/a.txt"], 1)
	assert.Empty(t, fs.tags["data/b.txt"])
}

func TestRemoveTag_FiltersMatchingKey(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.tags["data/a.txt"] = []store.Tag{
		{Key: "tier", Value: "hot"},
		{Key: "owner", Value: "ops"},
		{Key: "tier", Value: "archive"},
	}

	c := New(fs, DefaultConfig())

	// Every entry with the key is removed, remaining order preserved.
	err := c.RemoveTag(context.Background(), "test-bucket", []string{"data/"}, "tier")
	require.NoError(t, err)

	assert.Equal(t, []store.Tag{{Key: "owner", Value: "ops"}}, fs.tags["data/a.txt"])
}

func TestRemoveTag_WritesEmptySet(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.tags["data/a.txt"] = []store.Tag{{Key: "tier", Value: "hot"}}

	c := New(fs, DefaultConfig())

	err := c.RemoveTag(context.Background(), "test-bucket", []string{"data/"}, "tier")
	require.NoError(t, err)

	// The now-empty set is still written, clearing all tags.
	tags, ok := fs.tags["data/a.txt"]
	assert.True(t, ok)
	assert.Empty(t, tags)
}

func TestRemoveTag_AbsentKeyIsNoOpWrite(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.tags["data/a.txt"] = []store.Tag{{Key: "owner", Value: "ops"}}

	c := New(fs, DefaultConfig())

	err := c.RemoveTag(context.Background(), "test-bucket", []string{"data/"}, "missing")
	require.NoError(t, err)

	assert.Equal(t, []store.Tag{{Key: "owner", Value: "ops"}}, fs.tags["data/a.txt"])
}

func TestRemoveTag_GetTaggingFailureAborts(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	boom := errors.New("tag read denied")
	fs.getTagErr["data/a.txt"] = boom

	c := New(fs, DefaultConfig())

	err := c.RemoveTag(context.Background(), "test-bucket", []string{"data/"}, "tier")
	assert.ErrorIs(t, err, boom)
}
