package manifest

import (
	"errors"
	"fmt"
)

// ValidationError describes a single invalid manifest field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "manifest: " + e.Field + ": " + e.Message
}

// Validate checks the manifest for structural correctness.
//
// Validation runs before defaults are applied, so zero values for
// optional fields are accepted.
func (m *Manifest) Validate() error {
	if m.Version == "" {
		return &ValidationError{Field: "version", Message: "version is required"}
	}
	if m.Version != DefaultVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %q (supported: %s)", m.Version, DefaultVersion),
		}
	}

	if m.Bucket == "" {
		return &ValidationError{Field: "bucket", Message: "bucket is required"}
	}

	if len(m.Prefixes) == 0 {
		return &ValidationError{Field: "prefixes", Message: "at least one prefix is required"}
	}

	if m.Perform.Concurrency < 0 || m.Perform.Concurrency > MaxConcurrency {
		return &ValidationError{
			Field:   "perform.concurrency",
			Message: fmt.Sprintf("concurrency must be between 1 and %d", MaxConcurrency),
		}
	}

	if m.Perform.RateLimit < 0 {
		return &ValidationError{Field: "perform.rate_limit", Message: "rate_limit must be >= 0"}
	}

	return nil
}

// IsValidationError reports whether err is a manifest validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
