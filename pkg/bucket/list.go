package bucket

import (
	"context"
	"strings"

	"github.com/3leaps/bucketkit/pkg/store"
)

// ListAll paginates a bucket/prefix listing to completion and returns
// every page in request order, including the final non-truncated one.
//
// The pages are materialized, not streamed: downstream consumers filter
// over the complete listing. A prefix with no matching objects yields a
// single page with zero summaries.
//
// A failure on any page aborts the whole call; previously fetched pages
// are discarded and the caller must retry the listing from the start.
func (c *Client) ListAll(ctx context.Context, bucket, prefix string) ([]*store.ListResult, error) {
	var pages []*store.ListResult
	var continuationToken string

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := c.waitForRateLimit(ctx); err != nil {
			return nil, err
		}

		page, err := c.store.List(ctx, store.ListOptions{
			Bucket:            bucket,
			Prefix:            prefix,
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, err
		}

		pages = append(pages, page)

		if !page.IsTruncated || page.ContinuationToken == "" {
			break
		}
		continuationToken = page.ContinuationToken
	}

	return pages, nil
}

// Summaries flattens all pages for a bucket/prefix into one ordered
// sequence of object summaries, preserving page order and within-page
// order.
//
// A non-empty suffix retains only keys ending with that exact substring.
// The match is literal and case-sensitive, not a glob or regex.
func (c *Client) Summaries(ctx context.Context, bucket, prefix, suffix string) ([]store.ObjectSummary, error) {
	pages, err := c.ListAll(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}

	var summaries []store.ObjectSummary
	for _, page := range pages {
		for _, obj := range page.Objects {
			if suffix != "" && !strings.HasSuffix(obj.Key, suffix) {
				continue
			}
			summaries = append(summaries, obj)
		}
	}

	return summaries, nil
}
