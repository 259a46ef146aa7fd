// Package manifest provides loading and validation of bucketkit job manifests.
//
// A job manifest is a YAML or JSON file that configures a bucket
// operation: connection settings, the target bucket, the prefix set, an
// optional suffix filter, and performance knobs.
//
// Example manifest (YAML):
//
//	version: "1.0"
//	connection:
//	  region: us-east-1
//	bucket: my-data-bucket
//	prefixes:
//	  - "data/2024/"
//	  - "data/2025/"
//	suffix: ".avro"
//	perform:
//	  concurrency: 4
package manifest

// Manifest represents a validated job manifest.
//
// Required fields are Version, Bucket, and Prefixes. Connection and
// Perform are optional with sensible defaults.
type Manifest struct {
	// Schema is an optional JSON Schema reference for editor support.
	Schema string `json:"$schema,omitempty" yaml:"$schema,omitempty"`

	// Version is the manifest schema version. Must be "1.0".
	Version string `json:"version" yaml:"version"`

	// Connection configures the storage connection.
	Connection ConnectionConfig `json:"connection,omitempty" yaml:"connection,omitempty"`

	// Bucket is the bucket to operate on.
	Bucket string `json:"bucket" yaml:"bucket"`

	// Prefixes is the set of key prefixes the operation covers.
	// At least one prefix is required.
	Prefixes []string `json:"prefixes" yaml:"prefixes"`

	// Suffix restricts results to keys ending with this literal string.
	// Optional; empty means no suffix filtering.
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// Perform configures operation behavior (optional).
	Perform PerformConfig `json:"perform,omitempty" yaml:"perform,omitempty"`

	// Output configures output destination (optional).
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`
}

// ConnectionConfig configures the storage connection.
type ConnectionConfig struct {
	// Region is the AWS region (e.g., "us-east-1"). Optional.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint is a custom endpoint URL for S3-compatible storage. Optional.
	// Example: "https://s3.wasabisys.com"
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Profile is the AWS credential profile name. Optional.
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// PerformConfig configures operation behavior.
//
// All fields are optional with defaults applied during loading.
type PerformConfig struct {
	// Concurrency is the number of concurrent per-prefix listings.
	// Range: 1-32. Default: 4.
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`

	// RateLimit is the maximum list requests per second (0 = unlimited).
	// Default: 0.
	RateLimit float64 `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// OutputConfig configures output destination.
type OutputConfig struct {
	// Destination is the output target.
	// Values: "stdout" or "file:/path/to/output.jsonl"
	// Default: "stdout".
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// Default values for optional configuration fields.
const (
	// DefaultVersion is the current manifest schema version.
	DefaultVersion = "1.0"

	// DefaultConcurrency is the default number of concurrent listings.
	DefaultConcurrency = 4

	// MaxConcurrency is the upper bound accepted for concurrency.
	MaxConcurrency = 32

	// DefaultDestination is the default output destination.
	DefaultDestination = "stdout"
)

// ApplyDefaults fills in default values for optional fields.
//
// This should be called after loading and validating the manifest so
// callers don't need to reason about zero values.
func (m *Manifest) ApplyDefaults() {
	if m.Perform.Concurrency == 0 {
		m.Perform.Concurrency = DefaultConcurrency
	}
	// RateLimit: 0 is a valid value (unlimited), so no default needed

	if m.Output.Destination == "" {
		m.Output.Destination = DefaultDestination
	}
}
