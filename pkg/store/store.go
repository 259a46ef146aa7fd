// Package store defines the object-storage surface the convenience layer
// is built on.
//
// Implementations wrap a vendor SDK and keep its behavior intact: no retry
// or backoff policy of their own, credential and region resolution through
// the SDK default chains, and pagination via opaque continuation tokens.
package store

import (
	"context"
	"io"
	"time"
)

// Store abstracts the object-storage primitives used by the bucket helpers.
//
// Implementations should:
//   - Use SDK default credential chains unless given explicit credentials
//   - Support pagination via continuation tokens
//   - Be safe for concurrent use
type Store interface {
	// List returns a single page of objects for the given bucket and prefix.
	// Use ContinuationToken from ListResult for subsequent pages.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Get opens a content stream for a single object.
	// The caller owns the returned stream and must close it.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// Put writes an object from the given reader.
	Put(ctx context.Context, bucket, key string, body io.Reader, opts PutOptions) (*PutResult, error)

	// DeleteObjects removes up to 1000 keys in a single round trip.
	// Per-key failures are reported in the result, not as an error.
	DeleteObjects(ctx context.Context, bucket string, keys []string) (*DeleteResult, error)

	// GetTagging returns the tag set attached to an object.
	GetTagging(ctx context.Context, bucket, key string) ([]Tag, error)

	// PutTagging replaces the full tag set on an object.
	PutTagging(ctx context.Context, bucket, key string, tags []Tag) error

	// Close releases any resources held by the store.
	Close() error
}

// ListOptions configures a List operation.
type ListOptions struct {
	// Bucket is the bucket to list (required).
	Bucket string

	// Prefix filters results to keys starting with this value.
	// Empty string lists all objects.
	Prefix string

	// ContinuationToken resumes listing from a previous ListResult.
	// Empty string starts from the beginning.
	ContinuationToken string

	// MaxKeys limits the number of objects returned per page.
	// Zero uses the store default (typically 1000).
	MaxKeys int
}

// ListResult contains a page of objects from a List operation.
type ListResult struct {
	// Objects contains the object summaries for this page.
	Objects []ObjectSummary

	// ContinuationToken is used to retrieve the next page.
	// Empty string indicates no more pages.
	ContinuationToken string

	// IsTruncated indicates whether more results are available.
	IsTruncated bool
}

// ObjectSummary contains basic metadata returned from List operations.
type ObjectSummary struct {
	// Bucket is the bucket the object was listed from.
	Bucket string

	// Key is the full object key (path) in the bucket.
	Key string

	// Size is the object size in bytes.
	Size int64

	// ETag is the entity tag, typically an MD5 hash of the object.
	ETag string

	// LastModified is when the object was last modified.
	LastModified time.Time
}

// Tag is a single key/value metadata tag attached to an object.
//
// A tag set is a plain slice: duplicate keys are representable and are
// not collapsed by this package.
type Tag struct {
	Key   string
	Value string
}

// ServerSideEncryption identifies an at-rest encryption algorithm.
type ServerSideEncryption string

const (
	// SSEAES256 requests S3-managed AES-256 encryption at rest.
	SSEAES256 ServerSideEncryption = "AES256"
)

// ACL identifies a canned access-control policy applied on Put.
type ACL string

const (
	// ACLBucketOwnerFullControl grants the bucket owner full control of the
	// object, overriding any default object ACL.
	ACLBucketOwnerFullControl ACL = "bucket-owner-full-control"
)

// PutOptions configures a Put operation.
type PutOptions struct {
	// ContentLength is the exact body size in bytes.
	ContentLength int64

	// ServerSideEncryption, when non-empty, requests encryption at rest.
	ServerSideEncryption ServerSideEncryption

	// ACL, when non-empty, applies a canned access-control policy.
	ACL ACL
}

// PutResult reports what the store confirmed for a Put.
type PutResult struct {
	// ServerSideEncryption is the algorithm the store applied, empty when
	// the object was written without encryption at rest.
	ServerSideEncryption ServerSideEncryption
}

// DeleteResult reports the outcome of a DeleteObjects call.
type DeleteResult struct {
	// Deleted lists the keys the store confirmed as removed.
	Deleted []string

	// Errors lists per-key failures (permissions, etc.).
	Errors []DeleteError
}

// DeleteError is a single failed deletion within a batch.
type DeleteError struct {
	Key     string
	Code    string
	Message string
}
