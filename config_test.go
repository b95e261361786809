package s3sender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	senderrors "github.com/relaypipe/s3sender/errors"
)

// validConfig returns a minimal configuration that passes validation.
func validConfig() *Config {
	return &Config{
		Region:     "eu-central-1",
		Actions:    "mkBucket",
		BucketName: "test-bucket",
	}
}

// TestConfig_Validate tests that configuration validation fails closed.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "valid minimal configuration",
			cfg:  validConfig(),
		},
		{
			name: "empty region falls back to default",
			cfg: &Config{
				Actions:    "delete",
				BucketName: "test-bucket",
			},
		},
		{
			name: "unknown region",
			cfg: &Config{
				Region:     "mars-north-1",
				Actions:    "upload",
				BucketName: "test-bucket",
				Parameters: []string{ParamFile},
			},
			wantErr: "supported regions",
		},
		{
			name: "empty action list",
			cfg: &Config{
				Region:     "us-east-1",
				BucketName: "test-bucket",
			},
			wantErr: "no actions specified",
		},
		{
			name: "unknown action token",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "upload,explode",
				BucketName: "test-bucket",
				Parameters: []string{ParamFile},
			},
			wantErr: "unknown action",
		},
		{
			name: "invalid bucket name",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "delete",
				BucketName: "Invalid_Bucket",
			},
			wantErr: "bucket name",
		},
		{
			name: "bucket name too short",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "delete",
				BucketName: "ab",
			},
			wantErr: "between 3 and 63",
		},
		{
			name: "upload without file parameter",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "upload",
				BucketName: "test-bucket",
			},
			wantErr: "file parameter must be declared",
		},
		{
			name: "upload with file parameter",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "upload",
				BucketName: "test-bucket",
				Parameters: []string{ParamFile},
			},
		},
		{
			name: "copy without destination parameters",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "copy",
				BucketName: "test-bucket",
			},
			wantErr: "must be declared to perform [copy]",
		},
		{
			name: "copy with only destination bucket",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "copy",
				BucketName: "test-bucket",
				Parameters: []string{ParamDestinationBucket},
			},
			wantErr: "must be declared to perform [copy]",
		},
		{
			name: "copy with only destination key",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "copy",
				BucketName: "test-bucket",
				Parameters: []string{ParamDestinationKey},
			},
			wantErr: "must be declared to perform [copy]",
		},
		{
			name: "copy with both destination parameters",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "copy",
				BucketName: "test-bucket",
				Parameters: []string{ParamDestinationBucket, ParamDestinationKey},
			},
		},
		{
			name: "case insensitive action tokens",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "MKBUCKET,Delete",
				BucketName: "test-bucket",
			},
		},
		{
			name: "parameter requirements checked per action",
			cfg: &Config{
				Region:     "us-east-1",
				Actions:    "mkBucket,upload,copy",
				BucketName: "test-bucket",
				Parameters: []string{ParamFile, ParamDestinationBucket, ParamDestinationKey},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, senderrors.IsConfiguration(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestConfig_Region tests the effective region fallback.
func TestConfig_Region(t *testing.T) {
	assert.Equal(t, DefaultRegion, (&Config{}).region())
	assert.Equal(t, "us-west-2", (&Config{Region: "us-west-2"}).region())
}

// TestAvailableRegions tests that the region set is fixed and copied.
func TestAvailableRegions(t *testing.T) {
	regions := AvailableRegions()
	require.Len(t, regions, 18)
	assert.Contains(t, regions, DefaultRegion)
	assert.Contains(t, regions, "us-east-1")
	assert.Contains(t, regions, "cn-north-1")

	// Mutating the returned slice must not leak into the sender's set.
	regions[0] = "made-up-region"
	assert.NotContains(t, AvailableRegions(), "made-up-region")
}
