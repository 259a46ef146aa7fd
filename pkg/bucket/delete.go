package bucket

import (
	"context"
)

// DeleteAll submits all keys as one delete-multiple request and returns
// the number of keys the store confirmed deleted.
//
// Quiet mode is disabled on the store call so the confirmation list comes
// back. The count may be less than len(keys) when individual deletions
// fail (e.g. permissions); partial failure is observable only through the
// count, not as an error. An empty key set is a no-op returning zero.
func (c *Client) DeleteAll(ctx context.Context, bucket string, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	result, err := c.store.DeleteObjects(ctx, bucket, keys)
	if err != nil {
		return 0, err
	}

	return len(result.Deleted), nil
}
