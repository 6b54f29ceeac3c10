package constants

import "time"

const (
	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DefaultIdentityHTTPPort        = "8083"
	DefaultIdentityRequestTimeout  = 5 * time.Second
	DefaultProfileCacheTTL         = 5 * time.Minute
	ProfileCacheKeyPrefix          = "identity:profile:"
	ProfileCacheOperationTimeout   = 500 * time.Millisecond
	DefaultProfileLookupThreshold  = 20
	DefaultProfileLookupTimeout    = 2 * time.Second
	DefaultProfileLookupResetAfter = 10 * time.Second

	RateLimitIdentityRequestsPerSecond = 20.0
	RateLimitIdentityBurst             = 40
	RateLimitCleanupInterval           = 5 * time.Minute

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultLogDir    = "/var/log/survey-generator"
	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
