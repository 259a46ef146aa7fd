package bucket

import (
	"context"
	"os"

	"github.com/3leaps/bucketkit/pkg/store"
)

// UploadFile uploads a local file to bucket/key in a single call.
//
// Content length is taken from the file's byte size. When encrypted is
// true, S3-managed AES-256 encryption at rest is requested; when false,
// no encryption metadata is set. The upload always grants the bucket
// owner full control, overriding any default object ACL.
//
// There is no chunking or retry here; multipart upload of large files is
// out of scope.
func (c *Client) UploadFile(ctx context.Context, path, bucket, key string, encrypted bool) (*store.PutResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	opts := store.PutOptions{
		ContentLength: info.Size(),
		ACL:           store.ACLBucketOwnerFullControl,
	}
	if encrypted {
		opts.ServerSideEncryption = store.SSEAES256
	}

	return c.store.Put(ctx, bucket, key, f, opts)
}
