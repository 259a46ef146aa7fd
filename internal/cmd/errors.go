package cmd

import (
	"github.com/3leaps/bucketkit/pkg/output"
	"github.com/3leaps/bucketkit/pkg/store"
)

// errorCode maps a store error to a machine-readable record code.
func errorCode(err error) string {
	switch {
	case store.IsAccessDenied(err):
		return output.ErrCodeAccessDenied
	case store.IsNotFound(err), store.IsBucketNotFound(err):
		return output.ErrCodeNotFound
	case store.IsThrottled(err):
		return output.ErrCodeThrottled
	default:
		return output.ErrCodeInternal
	}
}
