// Package bucket implements convenience helpers over an object store:
// full-listing pagination, suffix-filtered summaries, parallel key
// collection across prefixes, lazy content fetching, tag mutation, bulk
// deletion, and file upload.
//
// The helpers orchestrate store calls and add no policy of their own: no
// retries, no backoff, no credential handling. Store failures propagate
// unmodified to the caller.
package bucket

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/3leaps/bucketkit/pkg/store"
	s3store "github.com/3leaps/bucketkit/pkg/store/s3"
)

// Config configures client behavior.
type Config struct {
	// Concurrency is the number of parallel list operations used by Keys.
	// Each prefix is listed concurrently up to this bound.
	// Default: 4
	Concurrency int

	// RateLimit is the maximum list requests per second to the store.
	// Zero means unlimited (the store handles its own throttling).
	// Default: 0
	RateLimit float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: 4,
		RateLimit:   0,
	}
}

// Client provides the bucket helper operations on top of a store.
//
// Client is stateless apart from its configuration and is safe for
// concurrent use as long as the underlying store is.
type Client struct {
	store store.Store
	cfg   Config

	// Rate limiter for list calls (nil if unlimited)
	limiter *rate.Limiter
}

// New creates a client over an already-constructed store.
//
// This constructor performs no ambient discovery, which keeps tests
// deterministic: pass any store.Store implementation.
func New(s store.Store, cfg Config) *Client {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}

	c := &Client{
		store: s,
		cfg:   cfg,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return c
}

// Open creates a client backed by an S3 store built from ambient
// configuration (SDK default credential and region chains).
//
// Use New with an explicit store when determinism matters.
func Open(ctx context.Context, storeCfg s3store.Config, cfg Config) (*Client, error) {
	s, err := s3store.New(ctx, storeCfg)
	if err != nil {
		return nil, err
	}
	return New(s, cfg), nil
}

// Close releases the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// waitForRateLimit blocks until the rate limiter allows a request.
// Returns immediately if rate limiting is disabled.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
