package s3sender

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/relaypipe/s3sender/errors"
)

// LoadConfig builds a Config from an optional YAML file and S3SENDER_*
// environment variables, environment taking precedence. A .env file in the
// working directory is honored when present. The returned configuration is
// validated; a malformed one is never returned.
//
// Recognized keys mirror the Config fields, e.g. S3SENDER_REGION,
// S3SENDER_ACTIONS, S3SENDER_BUCKET_NAME, S3SENDER_BUCKET_CREATION_ENABLED.
func LoadConfig(path string) (*Config, error) {
	// Load .env if it exists; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("s3sender")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("region", DefaultRegion)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewError("loadConfig", errors.ErrConfiguration).
				WithMessage("reading config file " + path + ": " + err.Error())
		}
	}

	// AutomaticEnv does not surface prefixed variables through Unmarshal
	// unless the keys are bound explicitly.
	for _, key := range []string{
		"region", "actions", "bucket_name", "bucket_region",
		"chunked_encoding_disabled", "accelerate_mode_enabled",
		"force_global_bucket_access", "bucket_creation_enabled",
		"download_directory", "parameters",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewError("loadConfig", errors.ErrConfiguration).
			WithMessage("unmarshaling configuration: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
