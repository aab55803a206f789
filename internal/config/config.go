package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"chatwire/internal/constants"
	"chatwire/internal/models"
)

var (
	ErrMissingAPIBaseURL = models.ConfigError{Message: "missing platform API base URL"}
	ErrMissingAccessKey  = models.ConfigError{Message: "missing platform access key"}
	ErrMissingDBPath     = models.ConfigError{Message: "missing database path"}
)

// LoadConfig reads the JSON config file, applies environment overrides and
// validates the result
func LoadConfig(path string) (*models.Config, error) {
	file, err := os.ReadFile(path) // #nosec G304 - Path comes from the operator's command line
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	if err := validateSecurity(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(c *models.Config) error {
	if c.Platform.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	if c.Platform.AccessKey == "" {
		return ErrMissingAccessKey
	}
	if c.Database.Path == "" {
		return ErrMissingDBPath
	}

	if c.Platform.TimeoutSec <= 0 {
		c.Platform.TimeoutSec = constants.DefaultPlatformTimeoutSec
	}
	if c.Server.Port <= 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = constants.DefaultServerReadTimeoutSec
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = constants.DefaultServerWriteTimeoutSec
	}
	if c.Server.IdleTimeoutSec <= 0 {
		c.Server.IdleTimeoutSec = constants.DefaultServerIdleTimeoutSec
	}
	if c.Retry.InitialBackoffMs <= 0 {
		c.Retry.InitialBackoffMs = constants.DefaultRetryBackoffMs
	}
	if c.Retry.MaxBackoffMs <= 0 {
		c.Retry.MaxBackoffMs = constants.DefaultMaxBackoffMs
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = constants.DefaultMaxAttempts
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = constants.DefaultRetentionDays
	}
	return nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if url := os.Getenv("CHATWIRE_API_BASE_URL"); url != "" {
		c.Platform.APIBaseURL = url
	}

	// SECURITY: credentials and webhook secrets belong in the environment,
	// not the config file
	if key := os.Getenv("CHATWIRE_ACCESS_KEY"); key != "" {
		c.Platform.AccessKey = key
	}
	if secret := os.Getenv("CHATWIRE_WEBHOOK_SECRET"); secret != "" {
		c.Platform.WebhookSecret = secret
	}

	if url := os.Getenv("CHATWIRE_WEBHOOK_URL"); url != "" {
		c.Platform.WebhookURL = url
	}
	if path := os.Getenv("CHATWIRE_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if port := os.Getenv("CHATWIRE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
	if level := os.Getenv("CHATWIRE_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// validateSecurity performs security-specific validation
func validateSecurity(c *models.Config) error {
	isProduction := os.Getenv("CHATWIRE_ENV") == "production"

	if isProduction {
		if c.Platform.WebhookSecret == "" {
			return models.ConfigError{Message: "webhook secret is required in production (set CHATWIRE_WEBHOOK_SECRET environment variable)"}
		}
		if len(c.Platform.WebhookSecret) < constants.MinSecretLength {
			return models.ConfigError{Message: fmt.Sprintf("webhook secret must be at least %d characters long", constants.MinSecretLength)}
		}
		if c.LogLevel == "debug" {
			return models.ConfigError{Message: "debug logging should not be used in production (security risk)"}
		}
	} else {
		if c.Platform.WebhookSecret == "" {
			fmt.Fprintf(os.Stderr, "WARNING: webhook secret not set. Set CHATWIRE_WEBHOOK_SECRET environment variable for security.\n")
		}
	}

	return nil
}
