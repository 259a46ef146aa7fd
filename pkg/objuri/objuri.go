// Package objuri formats and parses object-storage URIs.
//
// Example URIs:
//   - s3://bucket/key/path.txt
//   - s3n://bucket/prefix/part-00000.avro
package objuri

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultScheme is the scheme used when none is given.
const DefaultScheme = "s3"

// ErrMalformedPath indicates a formatted path is not a valid URI.
var ErrMalformedPath = errors.New("malformed object path")

// Path identifies a single object by bucket, key, and scheme.
//
// Path is an immutable value type; the rendered form is
// "scheme://bucket/key" with all leading slashes stripped from the key.
type Path struct {
	// Bucket is the bucket name.
	Bucket string

	// Key is the object key. Leading slashes are not significant and are
	// stripped when the path is rendered.
	Key string

	// Scheme is the URI scheme. Empty means DefaultScheme.
	Scheme string
}

// String returns the path in canonical form.
func (p Path) String() string {
	scheme := p.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	return fmt.Sprintf("%s://%s/%s", scheme, p.Bucket, strings.TrimLeft(p.Key, "/"))
}

// URL parses the canonical form with standard URI parsing.
//
// Returns ErrMalformedPath if the rendered string is not a valid URI,
// e.g. when the bucket contains characters invalid in a URI authority.
func (p Path) URL() (*url.URL, error) {
	s := p.String()
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPath, s, err)
	}
	// url.Parse is permissive; require the parts to survive the round trip
	// so a mangled authority is rejected rather than silently reinterpreted.
	if u.Scheme == "" || u.Host != p.Bucket {
		return nil, fmt.Errorf("%w: %q", ErrMalformedPath, s)
	}
	return u, nil
}

// Format renders a bucket/key pair with the default scheme.
func Format(bucket, key string) string {
	return Path{Bucket: bucket, Key: key}.String()
}

// FormatWithScheme renders a bucket/key pair with the given scheme verbatim.
func FormatWithScheme(scheme, bucket, key string) string {
	return Path{Bucket: bucket, Key: key, Scheme: scheme}.String()
}
