package models

// Config holds the application configuration
type Config struct {
	Platform      PlatformConfig `json:"platform"`
	Server        ServerConfig   `json:"server"`
	Database      DatabaseConfig `json:"database"`
	Retry         RetryConfig    `json:"retry"`
	Tracing       TracingConfig  `json:"tracing"`
	LogLevel      string         `json:"log_level"`
	RetentionDays int            `json:"retentionDays"`
}

// PlatformConfig holds conversations platform related configuration
type PlatformConfig struct {
	APIBaseURL    string `json:"api_base_url"`
	AccessKey     string `json:"access_key"`
	ChannelID     string `json:"channel_id"`
	TimeoutSec    int    `json:"timeout_sec"`
	WebhookSecret string `json:"webhook_secret"`
	// Public URL of this daemon's webhook endpoint, registered with the
	// platform on startup
	WebhookURL string `json:"webhook_url"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Port            int `json:"port"`
	ReadTimeoutSec  int `json:"readTimeoutSec"`
	WriteTimeoutSec int `json:"writeTimeoutSec"`
	IdleTimeoutSec  int `json:"idleTimeoutSec"`
}

// DatabaseConfig holds database related configuration
type DatabaseConfig struct {
	Path string `json:"path"`
}

// RetryConfig holds retry related configuration
type RetryConfig struct {
	InitialBackoffMs int `json:"initialBackoffMs"`
	MaxBackoffMs     int `json:"maxBackoffMs"`
	MaxAttempts      int `json:"maxAttempts"`
}

// TracingConfig holds OpenTelemetry related configuration
type TracingConfig struct {
	Enabled      bool    `json:"enabled"`
	OTLPEndpoint string  `json:"otlp_endpoint"`
	UseStdout    bool    `json:"use_stdout"`
	SampleRate   float64 `json:"sample_rate"`
}

type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
