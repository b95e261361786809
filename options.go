// Package s3sender provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package s3sender

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/rs/zerolog"
)

// clientConfig collects the client construction settings applied by options.
// The sender's declarative Config drives everything else.
type clientConfig struct {
	Endpoint            string
	ForcePathStyle      bool
	HTTPClient          *http.Client
	CustomAWSConfig     *aws.Config
	CredentialsProvider aws.CredentialsProvider
	Filesystem          fs.Filesystem
	Logger              *zerolog.Logger
	DetectContentType   bool
}

// Option configures the client built by Open.
type Option func(*clientConfig)

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(c *clientConfig) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *clientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.HTTPClient = client
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior, including the
// environment-variable credential resolution.
func WithAWSConfig(config *aws.Config) Option {
	return func(c *clientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithCredentialsProvider overrides the environment-variable credentials the
// client resolves by default.
func WithCredentialsProvider(provider aws.CredentialsProvider) Option {
	return func(c *clientConfig) {
		c.CredentialsProvider = provider
	}
}

// WithFilesystem sets a custom filesystem implementation for download
// destinations. This allows using in-memory filesystems for testing or
// virtual filesystems. If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) Option {
	return func(c *clientConfig) {
		c.Filesystem = filesystem
	}
}

// WithLogger sets the structured logger the sender writes operation events to.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.Logger = &logger
	}
}

// WithContentTypeDetection makes uploads sniff the payload for a content type
// instead of always sending application/octet-stream.
func WithContentTypeDetection(detect bool) Option {
	return func(c *clientConfig) {
		c.DetectContentType = detect
	}
}
