package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlibekovAA/survey-generator/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
)

type IdentityConfig struct {
	HTTPPort        string
	DatabaseURL     string
	JWTSecret       string
	RedisURL        string
	// TrustedProxies lists CIDRs or addresses whose forwarding headers are
	// believed when resolving the client address.
	TrustedProxies  []string
	ProfileCacheTTL time.Duration
	RequestTimeout  time.Duration

	ProfileLookupThreshold  int32
	ProfileLookupTimeout    time.Duration
	ProfileLookupResetAfter time.Duration
}

// CacheEnabled reports whether profile lookups go through Redis.
func (c IdentityConfig) CacheEnabled() bool {
	return c.RedisURL != ""
}

func LoadIdentityConfig() (IdentityConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return IdentityConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return IdentityConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return IdentityConfig{}, err
	}

	return IdentityConfig{
		HTTPPort:                getEnv("IDENTITY_HTTP_PORT", constants.DefaultIdentityHTTPPort),
		DatabaseURL:             databaseURL,
		JWTSecret:               jwtSecret,
		RedisURL:                getEnv("REDIS_URL", ""),
		TrustedProxies:          getListEnv("IDENTITY_TRUSTED_PROXIES"),
		ProfileCacheTTL:         getDurationEnv("IDENTITY_PROFILE_CACHE_TTL", constants.DefaultProfileCacheTTL),
		RequestTimeout:          getDurationEnv("IDENTITY_REQUEST_TIMEOUT", constants.DefaultIdentityRequestTimeout),
		ProfileLookupThreshold:  constants.DefaultProfileLookupThreshold,
		ProfileLookupTimeout:    getDurationEnv("IDENTITY_PROFILE_LOOKUP_TIMEOUT", constants.DefaultProfileLookupTimeout),
		ProfileLookupResetAfter: constants.DefaultProfileLookupResetAfter,
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getListEnv(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
