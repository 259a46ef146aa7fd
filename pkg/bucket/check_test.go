package bucket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_AllReachable(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	fs.addObject("logs/b.txt", 1)

	c := New(fs, DefaultConfig())

	results := c.Check(context.Background(), "test-bucket", []string{"data/", "logs/"})
	require.Len(t, results, 2)

	for _, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, 1, res.Objects)
	}
}

func TestCheck_EmptyPrefixStillListable(t *testing.T) {
	fs := newFakeStore()

	c := New(fs, DefaultConfig())

	results := c.Check(context.Background(), "test-bucket", []string{"missing/"})
	require.Len(t, results, 1)

	// Listable but empty: no error, zero objects on the probe page.
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 0, results[0].Objects)
}

func TestCheck_CollectsFailuresWithoutAborting(t *testing.T) {
	fs := newFakeStore()
	fs.addObject("data/a.txt", 1)
	boom := errors.New("access denied")
	fs.listErr["secret/"] = boom

	c := New(fs, DefaultConfig())

	results := c.Check(context.Background(), "test-bucket", []string{"secret/", "data/"})
	require.Len(t, results, 2)

	// The failed probe is recorded; the sweep continues to later prefixes.
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].Objects)
}
