package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	auditservice "github.com/AlibekovAA/survey-generator/internal/audit/service"
	"github.com/AlibekovAA/survey-generator/internal/common/clock"
	"github.com/AlibekovAA/survey-generator/internal/common/config"
	"github.com/AlibekovAA/survey-generator/internal/common/constants"
	"github.com/AlibekovAA/survey-generator/internal/common/db"
	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
	commonhttp "github.com/AlibekovAA/survey-generator/internal/common/http"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	"github.com/AlibekovAA/survey-generator/internal/common/redisclient"
	"github.com/AlibekovAA/survey-generator/internal/common/resilience"
	srv "github.com/AlibekovAA/survey-generator/internal/common/server"
	identitycache "github.com/AlibekovAA/survey-generator/internal/identity/cache"
	identityhttp "github.com/AlibekovAA/survey-generator/internal/identity/http"
	identityservice "github.com/AlibekovAA/survey-generator/internal/identity/service"
	userrepo "github.com/AlibekovAA/survey-generator/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "identity", os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadIdentityConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	var profiles identityservice.ProfileSource = userrepo.NewPgRepository(pool, log)

	healthChecks := map[string]commonhttp.HealthCheck{
		"database": pool.Ping,
	}

	redisClient, err := redisclient.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		profiles = identitycache.NewCachedProfileSource(redisClient, profiles, cfg.ProfileCacheTTL, log)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
		log.Infof("profile cache enabled ttl=%v", cfg.ProfileCacheTTL)
	}

	realClock := clock.NewRealClock()
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:    cfg.ProfileLookupThreshold,
		Timeout:      cfg.ProfileLookupTimeout,
		ResetAfter:   cfg.ProfileLookupResetAfter,
		Name:         "profile_lookup",
		IgnoreErrors: []error{commonerrors.ErrUserNotFound},
		Clock:        realClock,
		Logger:       log,
	})

	resolver := identityservice.NewResolver([]byte(cfg.JWTSecret), profiles, breaker, log)
	stamper := auditservice.NewStamper(realClock, log)

	clientIPs, err := commonhttp.NewClientIPResolver(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("invalid IDENTITY_TRUSTED_PROXIES: %v", err)
	}

	rateLimiter := commonhttp.NewRateLimiter(constants.RateLimitIdentityRequestsPerSecond, constants.RateLimitIdentityBurst)
	defer rateLimiter.Stop()

	api := identityhttp.NewHandler(stamper, cfg.RequestTimeout, log)
	api = identityhttp.IdentityMiddleware(resolver)(rateLimiter.Middleware(identityhttp.RateLimitKey(clientIPs))(api))

	mux := http.NewServeMux()
	mux.Handle("/api/identity/", api)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", commonhttp.HealthHandler(log, healthChecks))

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler(log, mux))

	hooks := []srv.ShutdownHook{
		func(context.Context) error {
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "identity", hooks)
}
