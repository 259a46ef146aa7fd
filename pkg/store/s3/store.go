package s3

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/3leaps/bucketkit/pkg/store"
)

// Store implements store.Store for AWS S3 and S3-compatible storage.
type Store struct {
	client  *s3.Client
	maxKeys int
}

var _ store.Store = (*Store)(nil)

// New creates a new S3 store with the given configuration.
//
// The store uses AWS SDK v2's default credential chain unless explicit
// credentials are provided in the config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, &store.StoreError{Op: "New", Err: err}
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		},
	}

	// Custom endpoint for S3-compatible stores
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)

	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	return &Store{
		client:  client,
		maxKeys: maxKeys,
	}, nil
}

// NewFromClient wraps an already-configured SDK client.
//
// This constructor takes the collaborator explicitly and performs no
// ambient credential or region discovery, which keeps tests deterministic.
func NewFromClient(client *s3.Client) *Store {
	return &Store{
		client:  client,
		maxKeys: DefaultMaxKeys,
	}
}

// loadAWSConfig builds the AWS configuration with appropriate credentials.
func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	// Only apply explicit region if the caller set one.
	// Let SDK resolve from env/profile first.
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	// Use explicit credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		staticCreds := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (empty for long-term credentials)
		)
		opts = append(opts, config.WithCredentialsProvider(staticCreds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}

	awsCfg.Region = resolveRegion(cfg.Endpoint, awsCfg.Region)

	return awsCfg, nil
}

// List returns a single page of objects for the given bucket and prefix.
func (s *Store) List(ctx context.Context, opts store.ListOptions) (*store.ListResult, error) {
	maxKeys := clampMaxKeys(opts.MaxKeys, s.maxKeys)

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(opts.Bucket),
		MaxKeys: aws.Int32(int32(maxKeys)),
	}

	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}

	if opts.ContinuationToken != "" {
		input.ContinuationToken = aws.String(opts.ContinuationToken)
	}

	output, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, s.wrapError("List", opts.Bucket, "", err)
	}

	objects := make([]store.ObjectSummary, 0, len(output.Contents))
	for _, obj := range output.Contents {
		objects = append(objects, store.ObjectSummary{
			Bucket:       opts.Bucket,
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			ETag:         cleanETag(aws.ToString(obj.ETag)),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}

	result := &store.ListResult{
		Objects:     objects,
		IsTruncated: aws.ToBool(output.IsTruncated),
	}

	if output.NextContinuationToken != nil {
		result.ContinuationToken = *output.NextContinuationToken
	}

	return result, nil
}

// Get opens a content stream for a single object.
// The caller owns the returned stream and must close it.
func (s *Store) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.wrapError("Get", bucket, key, err)
	}
	return output.Body, nil
}

// Put writes an object from the given reader.
func (s *Store) Put(ctx context.Context, bucket, key string, body io.Reader, opts store.PutOptions) (*store.PutResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(opts.ContentLength),
	}

	if opts.ServerSideEncryption != "" {
		input.ServerSideEncryption = types.ServerSideEncryption(opts.ServerSideEncryption)
	}
	if opts.ACL != "" {
		input.ACL = types.ObjectCannedACL(opts.ACL)
	}

	output, err := s.client.PutObject(ctx, input)
	if err != nil {
		return nil, s.wrapError("Put", bucket, key, err)
	}

	return &store.PutResult{
		ServerSideEncryption: store.ServerSideEncryption(output.ServerSideEncryption),
	}, nil
}

// DeleteObjects removes up to MaxDeleteBatch keys in a single round trip.
//
// Quiet mode is disabled so the service reports the keys it actually
// removed. Per-key failures land in DeleteResult.Errors, not in the
// returned error.
func (s *Store) DeleteObjects(ctx context.Context, bucket string, keys []string) (*store.DeleteResult, error) {
	identifiers := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		identifiers = append(identifiers, types.ObjectIdentifier{
			Key: aws.String(key),
		})
	}

	output, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: identifiers,
			Quiet:   aws.Bool(false),
		},
	})
	if err != nil {
		return nil, s.wrapError("DeleteObjects", bucket, "", err)
	}

	result := &store.DeleteResult{}
	for _, deleted := range output.Deleted {
		result.Deleted = append(result.Deleted, aws.ToString(deleted.Key))
	}
	for _, delErr := range output.Errors {
		result.Errors = append(result.Errors, store.DeleteError{
			Key:     aws.ToString(delErr.Key),
			Code:    aws.ToString(delErr.Code),
			Message: aws.ToString(delErr.Message),
		})
	}

	return result, nil
}

// GetTagging returns the tag set attached to an object.
func (s *Store) GetTagging(ctx context.Context, bucket, key string) ([]store.Tag, error) {
	output, err := s.client.GetObjectTagging(ctx, &s3.GetObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.wrapError("GetTagging", bucket, key, err)
	}

	tags := make([]store.Tag, 0, len(output.TagSet))
	for _, tag := range output.TagSet {
		tags = append(tags, store.Tag{
			Key:   aws.ToString(tag.Key),
			Value: aws.ToString(tag.Value),
		})
	}
	return tags, nil
}

// PutTagging replaces the full tag set on an object.
//
// An empty slice writes an empty tag set, clearing all tags.
func (s *Store) PutTagging(ctx context.Context, bucket, key string, tags []store.Tag) error {
	tagSet := make([]types.Tag, 0, len(tags))
	for _, tag := range tags {
		tagSet = append(tagSet, types.Tag{
			Key:   aws.String(tag.Key),
			Value: aws.String(tag.Value),
		})
	}

	_, err := s.client.PutObjectTagging(ctx, &s3.PutObjectTaggingInput{
		Bucket:  aws.String(bucket),
		Key:     aws.String(key),
		Tagging: &types.Tagging{TagSet: tagSet},
	})
	if err != nil {
		return s.wrapError("PutTagging", bucket, key, err)
	}
	return nil
}

// Close releases any resources held by the store.
// The S3 client doesn't require explicit cleanup, but this satisfies the interface.
func (s *Store) Close() error {
	return nil
}

// wrapError converts S3 errors to store errors with appropriate sentinel errors.
func (s *Store) wrapError(op, bucket, key string, err error) error {
	wrapped := &store.StoreError{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}

	// Check for specific S3 error types first
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket

	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchKey):
		wrapped.Err = store.ErrNotFound
		return wrapped
	case errors.As(err, &noSuchBucket):
		wrapped.Err = store.ErrBucketNotFound
		return wrapped
	}

	// Check smithy API errors for error codes
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			wrapped.Err = store.ErrNotFound
		case "NoSuchBucket":
			wrapped.Err = store.ErrBucketNotFound
		case "AccessDenied", "Forbidden":
			wrapped.Err = store.ErrAccessDenied
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			wrapped.Err = store.ErrInvalidCredentials
		case "SlowDown", "Throttling", "RequestLimitExceeded":
			wrapped.Err = store.ErrThrottled
		case "ServiceUnavailable", "InternalError":
			wrapped.Err = store.ErrUnavailable
		}
		return wrapped
	}

	// Fallback: check error message for common cases
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "NoSuchKey") || strings.Contains(errMsg, "NotFound") || strings.Contains(errMsg, "404"):
		wrapped.Err = store.ErrNotFound
	case strings.Contains(errMsg, "NoSuchBucket"):
		wrapped.Err = store.ErrBucketNotFound
	case strings.Contains(errMsg, "AccessDenied") || strings.Contains(errMsg, "Forbidden") || strings.Contains(errMsg, "403"):
		wrapped.Err = store.ErrAccessDenied
	case strings.Contains(errMsg, "InvalidAccessKeyId") || strings.Contains(errMsg, "SignatureDoesNotMatch"):
		wrapped.Err = store.ErrInvalidCredentials
	case strings.Contains(errMsg, "SlowDown") || strings.Contains(errMsg, "Throttling") || strings.Contains(errMsg, "429"):
		wrapped.Err = store.ErrThrottled
	case strings.Contains(errMsg, "ServiceUnavailable") || strings.Contains(errMsg, "503"):
		wrapped.Err = store.ErrUnavailable
	}

	return wrapped
}

// cleanETag removes surrounding quotes from an ETag value.
// S3 returns ETags with quotes, e.g., "d41d8cd98f00b204e9800998ecf8427e".
func cleanETag(etag string) string {
	return strings.Trim(etag, "\"")
}

// clampMaxKeys applies defaults and limits to maxKeys values.
// If requested is <= 0, uses storeDefault. Result is clamped to MaxAllowedKeys.
func clampMaxKeys(requested, storeDefault int) int {
	if requested <= 0 {
		requested = storeDefault
	}
	if requested > MaxAllowedKeys {
		return MaxAllowedKeys
	}
	return requested
}

// resolveRegion applies the region fallback after SDK config loading.
//
// The sdkRegion parameter already incorporates explicit config, environment
// variables, and the shared profile. Only the final default remains:
//   - If sdkRegion is still empty AND no custom endpoint, default to us-east-1
//   - For S3-compatible stores (endpoint set), no defaulting occurs
func resolveRegion(endpoint, sdkRegion string) string {
	if sdkRegion != "" {
		return sdkRegion
	}

	if endpoint == "" {
		return DefaultAWSRegion
	}

	// S3-compatible: no default, the endpoint may not need a region
	return ""
}
