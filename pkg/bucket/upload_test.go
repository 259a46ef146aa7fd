package bucket

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/bucketkit/pkg/store"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.bin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUploadFile_Plain(t *testing.T) {
	fs := newFakeStore()
	c := New(fs, DefaultConfig())

	path := writeTempFile(t, "hello world")

	result, err := c.UploadFile(context.Background(), path, "test-bucket", "uploads/hello.txt", false)
	require.NoError(t, err)

	require.Len(t, fs.putCalls, 1)
	call := fs.putCalls[0]

	assert.Equal(t, "test-bucket", call.bucket)
	assert.Equal(t, "uploads/hello.txt", call.key)
	assert.Equal(t, []byte("hello world"), call.body)
	assert.Equal(t, int64(11), call.opts.ContentLength)

	// No encryption requested, none reported.
	assert.Empty(t, call.opts.ServerSideEncryption)
	assert.Empty(t, result.ServerSideEncryption)
}

func TestUploadFile_Encrypted(t *testing.T) {
	fs := newFakeStore()
	c := New(fs, DefaultConfig())

	path := writeTempFile(t, "secret payload")

	result, err := c.UploadFile(context.Background(), path, "test-bucket", "vault/secret.bin", true)
	require.NoError(t, err)

	require.Len(t, fs.putCalls, 1)
	assert.Equal(t, store.SSEAES256, fs.putCalls[0].opts.ServerSideEncryption)
	assert.Equal(t, store.SSEAES256, result.ServerSideEncryption)
}

func TestUploadFile_ACLAlwaysBucketOwnerFullControl(t *testing.T) {
	fs := newFakeStore()
	c := New(fs, DefaultConfig())

	path := writeTempFile(t, "x")

	_, err := c.UploadFile(context.Background(), path, "test-bucket", "k1", false)
	require.NoError(t, err)
	_, err = c.UploadFile(context.Background(), path, "test-bucket", "k2", true)
	require.NoError(t, err)

	// The grant is unconditional, independent of the encryption choice.
	require.Len(t, fs.putCalls, 2)
	assert.Equal(t, store.ACLBucketOwnerFullControl, fs.putCalls[0].opts.ACL)
	assert.Equal(t, store.ACLBucketOwnerFullControl, fs.putCalls[1].opts.ACL)
}

func TestUploadFile_EmptyFile(t *testing.T) {
	fs := newFakeStore()
	c := New(fs, DefaultConfig())

	path := writeTempFile(t, "")

	_, err := c.UploadFile(context.Background(), path, "test-bucket", "empty.txt", false)
	require.NoError(t, err)

	require.Len(t, fs.putCalls, 1)
	assert.Equal(t, int64(0), fs.putCalls[0].opts.ContentLength)
	assert.Empty(t, fs.putCalls[0].body)
}

func TestUploadFile_MissingFile(t *testing.T) {
	fs := newFakeStore()
	c := New(fs, DefaultConfig())

	_, err := c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), "test-bucket", "k", false)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))

	// Nothing was sent to the store.
	assert.Empty(t, fs.putCalls)
}
