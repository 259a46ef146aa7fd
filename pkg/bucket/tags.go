package bucket

import (
	"context"

	"github.com/3leaps/bucketkit/pkg/store"
)

// AddTag appends a tag to every object matched by the prefix set.
//
// Keys are resolved with the parallel fan-out, then mutated sequentially:
// read the current tag set, append the tag, write the full set back. No
// deduplication is performed: adding a tag whose key already exists
// leaves both entries in the set.
//
// The sequence is not atomic: a failure partway through leaves earlier
// objects mutated and later ones untouched. The per-object
// read-then-write carries no concurrency token either; a concurrent
// external writer on the same key is last-writer-wins.
func (c *Client) AddTag(ctx context.Context, bucket string, prefixes []string, tag store.Tag) error {
	keys, err := c.Keys(ctx, bucket, prefixes)
	if err != nil {
		return err
	}

	for _, key := range keys {
		tags, err := c.store.GetTagging(ctx, bucket, key)
		if err != nil {
			return err
		}

		tags = append(tags, tag)

		if err := c.store.PutTagging(ctx, bucket, key, tags); err != nil {
			return err
		}
	}

	return nil
}

// RemoveTag deletes all tags with the given key from every object matched
// by the prefix set.
//
// Tags whose key differs are retained in order. If nothing remains, an
// empty tag set is written, which clears all tags on the object. The same
// non-atomicity caveats as AddTag apply.
func (c *Client) RemoveTag(ctx context.Context, bucket string, prefixes []string, tagKey string) error {
	keys, err := c.Keys(ctx, bucket, prefixes)
	if err != nil {
		return err
	}

	for _, key := range keys {
		tags, err := c.store.GetTagging(ctx, bucket, key)
		if err != nil {
			return err
		}

		kept := make([]store.Tag, 0, len(tags))
		for _, t := range tags {
			if t.Key != tagKey {
				kept = append(kept, t)
			}
		}

		if err := c.store.PutTagging(ctx, bucket, key, kept); err != nil {
			return err
		}
	}

	return nil
}
