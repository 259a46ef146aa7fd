package bucket

import (
	"context"
	"io"

	"github.com/3leaps/bucketkit/pkg/store"
)

// Content pairs an object summary with its opened content stream.
//
// Ownership of Body transfers to the caller on production: the caller
// must close it on every exit path.
type Content struct {
	store.ObjectSummary

	// Body is the object's content stream.
	Body io.ReadCloser
}

// ContentIterator produces content streams one object at a time.
//
// The listing is resolved up front; the fetches are lazy. Each Next call
// performs exactly one Get against the store, so at most one fetch is in
// flight per consumed element and objects the caller never reaches are
// never fetched.
type ContentIterator struct {
	store     store.Store
	bucket    string
	summaries []store.ObjectSummary
	next      int
}

// Contents resolves the suffix-filtered listing for a bucket/prefix and
// returns a lazy iterator over the matching objects' content streams.
//
// The listing itself is materialized eagerly; listing failures surface
// here rather than from the iterator.
func (c *Client) Contents(ctx context.Context, bucket, prefix, suffix string) (*ContentIterator, error) {
	summaries, err := c.Summaries(ctx, bucket, prefix, suffix)
	if err != nil {
		return nil, err
	}

	return &ContentIterator{
		store:     c.store,
		bucket:    bucket,
		summaries: summaries,
	}, nil
}

// Next opens and returns the next object's content stream.
//
// Returns io.EOF when the sequence is exhausted. On a fetch failure the
// error is returned as-is and the iterator stays positioned on the failed
// object, so a retrying caller sees it again.
func (it *ContentIterator) Next(ctx context.Context) (*Content, error) {
	if it.next >= len(it.summaries) {
		return nil, io.EOF
	}

	obj := it.summaries[it.next]
	body, err := it.store.Get(ctx, it.bucket, obj.Key)
	if err != nil {
		return nil, err
	}
	it.next++

	return &Content{ObjectSummary: obj, Body: body}, nil
}

// Remaining reports how many objects have not been produced yet.
func (it *ContentIterator) Remaining() int {
	return len(it.summaries) - it.next
}
