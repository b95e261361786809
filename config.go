package s3sender

import (
	"fmt"
	"strings"

	"github.com/relaypipe/s3sender/errors"
	"github.com/relaypipe/s3sender/internal/validation"
)

// DefaultRegion is used when no client region is configured.
const DefaultRegion = "eu-central-1"

// availableRegions is the fixed set of regions the sender accepts for both
// the client region and the bucket creation region.
var availableRegions = []string{
	"us-gov-west-1", "us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1",
	"ap-south-1", "ap-southeast-1", "ap-southeast-2", "ap-northeast-1", "ap-northeast-2",
	"sa-east-1", "cn-north-1", "cn-northwest-1", "ca-central-1",
}

// AvailableRegions returns the regions the sender accepts.
func AvailableRegions() []string {
	regions := make([]string, len(availableRegions))
	copy(regions, availableRegions)
	return regions
}

// regionSupported reports whether region is in the fixed region set.
func regionSupported(region string) bool {
	for _, r := range availableRegions {
		if r == region {
			return true
		}
	}
	return false
}

// Recognized invocation parameter names.
const (
	// ParamObjectKey names the object to operate on; defaults to the message
	// body when absent or empty.
	ParamObjectKey = "objectKey"

	// ParamFile carries the data to upload. Required for the upload action.
	ParamFile = "file"

	// ParamDestinationBucket names the bucket an object is copied to.
	// Required for the copy action.
	ParamDestinationBucket = "destinationBucketName"

	// ParamDestinationKey names the copied object. Required for the copy action.
	ParamDestinationKey = "destinationObjectKey"

	// ParamDestinationPath is the local path a downloaded object is written
	// to. When absent, Config.DownloadDirectory supplies the destination.
	ParamDestinationPath = "destinationPath"
)

// Config is the declarative configuration of a Sender. It is treated as
// immutable once Configure has validated it.
type Config struct {
	// Region is the client region. Must be one of AvailableRegions.
	Region string `mapstructure:"region"`

	// Actions is the whitespace/comma separated action token list, executed
	// in order on every invocation.
	Actions string `mapstructure:"actions"`

	// BucketName is the bucket all configured actions target.
	BucketName string `mapstructure:"bucket_name"`

	// BucketRegion is the region buckets are created in when
	// ForceGlobalBucketAccess is enabled. Must then be one of AvailableRegions.
	BucketRegion string `mapstructure:"bucket_region"`

	// ChunkedEncodingDisabled makes uploads use unsigned payloads instead of
	// aws-chunked streaming signatures.
	ChunkedEncodingDisabled bool `mapstructure:"chunked_encoding_disabled"`

	// AccelerateModeEnabled routes requests through the S3 accelerate
	// endpoint. The bucket must have acceleration enabled in advance.
	AccelerateModeEnabled bool `mapstructure:"accelerate_mode_enabled"`

	// ForceGlobalBucketAccess allows the client to address and create buckets
	// outside its own region.
	ForceGlobalBucketAccess bool `mapstructure:"force_global_bucket_access"`

	// BucketCreationEnabled allows upload and copy to create a missing
	// target bucket. Without it those operations fail on a missing bucket.
	BucketCreationEnabled bool `mapstructure:"bucket_creation_enabled"`

	// DownloadDirectory is the local directory downloaded objects are written
	// to when the invocation carries no destinationPath parameter.
	DownloadDirectory string `mapstructure:"download_directory"`

	// Parameters is the declared parameter list resolved per invocation.
	Parameters []string `mapstructure:"parameters"`
}

// Validate checks the configuration against the supported region set, the
// supported action set, bucket naming rules, and the per-action parameter
// requirements. It performs no network access. A sender whose configuration
// fails validation must never become usable.
func (c *Config) Validate() error {
	region := c.Region
	if region == "" {
		region = DefaultRegion
	}
	if !regionSupported(region) {
		return errors.NewError("configure", errors.ErrConfiguration).
			WithMessage(fmt.Sprintf("region unknown or not specified [%s], please use one of the supported regions: %s",
				c.Region, strings.Join(availableRegions, ", ")))
	}

	actions, err := ParseActions(c.Actions)
	if err != nil {
		return err
	}

	for _, action := range actions {
		if err := validation.ValidateBucketName(c.BucketName); err != nil {
			return errors.NewError("configure", errors.ErrConfiguration).
				WithBucket(c.BucketName).
				WithMessage(err.Error())
		}

		switch action {
		case ActionUpload:
			if !c.declaresParameter(ParamFile) {
				return errors.NewError("configure", errors.ErrConfiguration).
					WithMessage(fmt.Sprintf("the %s parameter must be declared to perform [%s]",
						ParamFile, action))
			}
		case ActionCopy:
			if !c.declaresParameter(ParamDestinationBucket) || !c.declaresParameter(ParamDestinationKey) {
				return errors.NewError("configure", errors.ErrConfiguration).
					WithMessage(fmt.Sprintf("the %s and %s parameters must be declared to perform [%s]",
						ParamDestinationBucket, ParamDestinationKey, action))
			}
		}
	}

	return nil
}

// region returns the effective client region.
func (c *Config) region() string {
	if c.Region == "" {
		return DefaultRegion
	}
	return c.Region
}

// declaresParameter reports whether name is in the declared parameter list.
func (c *Config) declaresParameter(name string) bool {
	for _, p := range c.Parameters {
		if p == name {
			return true
		}
	}
	return false
}
