package bucket

import (
	"context"
	"sync"
)

// Keys lists all prefixes concurrently and returns the merged key
// collection.
//
// Each prefix is paginated independently; the fan-out is bounded by
// Config.Concurrency. Ordering across prefixes is unspecified; within one
// prefix's contribution, listing order is preserved. Duplicate keys from
// overlapping prefixes are preserved, not deduplicated.
//
// The fan-out is fail-fast: the first per-prefix failure cancels the
// remaining listings and the whole call returns that error with no
// partial results.
func (c *Client) Keys(ctx context.Context, bucket string, prefixes []string) ([]string, error) {
	fanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, c.cfg.Concurrency)

	var mu sync.Mutex
	var keys []string

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for _, prefix := range prefixes {
		// Acquire semaphore or bail on cancellation. Only release what was
		// actually acquired.
		select {
		case <-fanCtx.Done():
		case sem <- struct{}{}:
		}

		if fanCtx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }()

			summaries, err := c.Summaries(fanCtx, bucket, p, "")
			if err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}

			mu.Lock()
			for _, obj := range summaries {
				keys = append(keys, obj.Key)
			}
			mu.Unlock()
		}(prefix)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
