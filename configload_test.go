package s3sender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	senderrors "github.com/relaypipe/s3sender/errors"
)

// writeConfigFile writes a YAML config into a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "s3sender.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig tests file loading, environment precedence, and validation.
func TestLoadConfig(t *testing.T) {
	t.Run("loads a full configuration file", func(t *testing.T) {
		path := writeConfigFile(t, `
region: us-east-1
actions: "mkBucket,upload"
bucket_name: test-bucket
bucket_creation_enabled: true
download_directory: /var/downloads
parameters:
  - objectKey
  - file
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "us-east-1", cfg.Region)
		assert.Equal(t, "mkBucket,upload", cfg.Actions)
		assert.Equal(t, "test-bucket", cfg.BucketName)
		assert.True(t, cfg.BucketCreationEnabled)
		assert.Equal(t, "/var/downloads", cfg.DownloadDirectory)
		assert.Equal(t, []string{"objectKey", "file"}, cfg.Parameters)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfigFile(t, `
region: us-east-1
actions: delete
bucket_name: test-bucket
`)
		t.Setenv("S3SENDER_REGION", "eu-west-1")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "eu-west-1", cfg.Region)
	})

	t.Run("environment only", func(t *testing.T) {
		t.Setenv("S3SENDER_ACTIONS", "delete")
		t.Setenv("S3SENDER_BUCKET_NAME", "env-bucket")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRegion, cfg.Region)
		assert.Equal(t, "env-bucket", cfg.BucketName)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, senderrors.IsConfiguration(err))
	})

	t.Run("invalid configuration never loads", func(t *testing.T) {
		path := writeConfigFile(t, `
region: us-east-1
actions: explode
bucket_name: test-bucket
`)

		cfg, err := LoadConfig(path)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, senderrors.IsConfiguration(err))
	})
}
