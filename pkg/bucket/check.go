package bucket

import (
	"context"

	"github.com/3leaps/bucketkit/pkg/store"
)

// CheckResult is the outcome of a single prefix reachability probe.
type CheckResult struct {
	// Prefix is the probed prefix.
	Prefix string

	// Objects is the number of objects seen on the one-key probe page
	// (0 or 1).
	Objects int

	// Err is the probe failure, nil when the prefix is listable.
	Err error
}

// Check probes each prefix with a single one-key listing call.
//
// This is a read-only reachability and permission check: it confirms the
// bucket exists and the caller can list under each prefix without paying
// for a full listing. All prefixes are probed; failures are collected per
// prefix rather than aborting the sweep.
func (c *Client) Check(ctx context.Context, bucket string, prefixes []string) []CheckResult {
	results := make([]CheckResult, 0, len(prefixes))

	for _, prefix := range prefixes {
		res := CheckResult{Prefix: prefix}

		page, err := c.store.List(ctx, store.ListOptions{
			Bucket:  bucket,
			Prefix:  prefix,
			MaxKeys: 1,
		})
		if err != nil {
			res.Err = err
		} else {
			res.Objects = len(page.Objects)
		}

		results = append(results, res)
	}

	return results
}
