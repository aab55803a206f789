package constants

// Default retry configuration values
const (
	DefaultRetryBackoffMs = 1000
	DefaultMaxBackoffMs   = 60000
	DefaultMaxAttempts    = 5
	DefaultRetentionDays  = 30
)

// Default server configuration values
const (
	DefaultServerPort            = 8084
	DefaultServerReadTimeoutSec  = 15
	DefaultServerWriteTimeoutSec = 15
	DefaultServerIdleTimeoutSec  = 60
	DefaultGracefulShutdownSec   = 30
)

// Default platform client values
const (
	DefaultPlatformTimeoutSec      = 30
	DefaultCircuitBreakerFailures  = 5
	DefaultCircuitBreakerTimeoutSec = 30
)

// Encryption parameters for at-rest message body encryption
const (
	PBKDF2Iterations  = 100000
	EncryptionKeySize = 32
	NonceSize         = 12
	MinSecretLength   = 32
)
