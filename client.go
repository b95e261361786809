// Package s3sender provides client construction and existence guards.
package s3sender

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/rs/zerolog"

	senderrors "github.com/relaypipe/s3sender/errors"
	"github.com/relaypipe/s3sender/internal/s3api"
)

// Client wraps the shared S3 handle together with the sender configuration
// that drives its operations. One Client is built per Open and shared by all
// in-flight invocations; the SDK's connection pool makes it safe for
// concurrent use, and the sender adds no coordination of its own.
type Client struct {
	// api is the underlying AWS SDK S3 client
	api s3api.S3API

	// cfg is the validated sender configuration
	cfg *Config

	// fs is the filesystem abstraction download destinations are written through
	fs fs.Filesystem

	// log receives structured operation events
	log zerolog.Logger

	// detectContentType enables payload sniffing on upload
	detectContentType bool
}

// newClient constructs the S3 client from the sender configuration.
// Credentials are resolved from the environment variables unless an option
// overrides them. The feature flags map onto SDK options: accelerate mode,
// ARN-region use for global bucket access, and unsigned payloads when chunked
// encoding is disabled.
func newClient(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	var awsCfg aws.Config
	var err error

	if cc.CustomAWSConfig != nil {
		awsCfg = *cc.CustomAWSConfig
	} else {
		provider := cc.CredentialsProvider
		if provider == nil {
			provider = environmentCredentials()
		}
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.region()),
			awsconfig.WithCredentialsProvider(provider),
		)
		if err != nil {
			return nil, senderrors.NewError("open", err)
		}
	}

	if awsCfg.Region == "" {
		awsCfg.Region = cfg.region()
	}

	var s3Opts []func(*s3.Options)

	if cfg.AccelerateModeEnabled {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UseAccelerate = true
		})
	}

	if cfg.ForceGlobalBucketAccess {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UseARNRegion = true
		})
	}

	if cfg.ChunkedEncodingDisabled {
		// Unsigned payloads are the SDK v2 way to avoid aws-chunked
		// streaming signatures on uploads.
		s3Opts = append(s3Opts, s3.WithAPIOptions(
			v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware,
		))
	}

	if cc.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if cc.Endpoint != "" {
		endpoint := cc.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	if cc.HTTPClient != nil {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = cc.HTTPClient
		})
	}

	filesystem := cc.Filesystem
	if filesystem == nil {
		filesystem = billy.NewOSFS("/")
	}

	logger := zerolog.Nop()
	if cc.Logger != nil {
		logger = *cc.Logger
	}

	return &Client{
		api:               s3.NewFromConfig(awsCfg, s3Opts...),
		cfg:               cfg,
		fs:                filesystem,
		log:               logger,
		detectContentType: cc.DetectContentType,
	}, nil
}

// newClientWithAPI builds a Client around a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func newClientWithAPI(api s3api.S3API, cfg *Config, opts ...Option) *Client {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	filesystem := cc.Filesystem
	if filesystem == nil {
		filesystem = billy.NewOSFS("/")
	}

	logger := zerolog.Nop()
	if cc.Logger != nil {
		logger = *cc.Logger
	}

	return &Client{
		api:               api,
		cfg:               cfg,
		fs:                filesystem,
		log:               logger,
		detectContentType: cc.DetectContentType,
	}
}

// environmentCredentials resolves static credentials from the standard AWS
// environment variables.
func environmentCredentials() aws.CredentialsProvider {
	return credentials.NewStaticCredentialsProvider(
		os.Getenv("AWS_ACCESS_KEY_ID"),
		os.Getenv("AWS_SECRET_ACCESS_KEY"),
		os.Getenv("AWS_SESSION_TOKEN"),
	)
}

// BucketExists checks whether the named bucket exists using a HEAD request.
// It is a pure read; not-found responses are reported as (false, nil).
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, senderrors.NewBucketError("bucketExists", bucket, convertAWSError(err))
	}
	return true, nil
}

// ObjectExists checks whether the named object exists using a HEAD request.
// It is a pure read; not-found responses are reported as (false, nil).
func (c *Client) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, senderrors.NewObjectError("objectExists", bucket, key, convertAWSError(err))
	}
	return true, nil
}

// isNotFound reports whether an SDK error is a not-found response.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}

	// HeadObject/HeadBucket errors are not always modeled; fall back to the
	// error code in the message.
	errMsg := err.Error()
	return strings.Contains(errMsg, "NotFound") ||
		strings.Contains(errMsg, "NoSuchKey") ||
		strings.Contains(errMsg, "NoSuchBucket")
}

// convertAWSError converts AWS SDK errors to the sender's error taxonomy.
// Timeouts pass through as the declared timeout category; everything else is
// returned unchanged for the caller to wrap.
func convertAWSError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return senderrors.ErrTimeout
	}

	var bucketAlreadyExists *types.BucketAlreadyExists
	if errors.As(err, &bucketAlreadyExists) {
		return senderrors.ErrBucketAlreadyExists
	}
	var bucketAlreadyOwned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &bucketAlreadyOwned) {
		return senderrors.ErrBucketAlreadyExists
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return senderrors.ErrBucketNotFound
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return senderrors.ErrObjectNotFound
	}

	return err
}
