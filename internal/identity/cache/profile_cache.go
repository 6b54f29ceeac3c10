package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AlibekovAA/survey-generator/internal/common/constants"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	"github.com/AlibekovAA/survey-generator/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/survey-generator/internal/user/domain"
)

type ProfileSource interface {
	FindProfile(ctx context.Context, id userdomain.ID) (userdomain.Profile, error)
}

type cachedProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CachedProfileSource keeps profiles in Redis in front of another source.
// Redis failures are logged and the lookup goes to the source.
type CachedProfileSource struct {
	client *redis.Client
	next   ProfileSource
	ttl    time.Duration
	log    *logger.Logger
}

func NewCachedProfileSource(client *redis.Client, next ProfileSource, ttl time.Duration, log *logger.Logger) *CachedProfileSource {
	if ttl <= 0 {
		ttl = constants.DefaultProfileCacheTTL
	}
	return &CachedProfileSource{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    log,
	}
}

func profileKey(id userdomain.ID) string {
	return constants.ProfileCacheKeyPrefix + string(id)
}

func (c *CachedProfileSource) FindProfile(ctx context.Context, id userdomain.ID) (userdomain.Profile, error) {
	if profile, ok := c.get(ctx, id); ok {
		metrics.ProfileCacheHits.Inc()
		return profile, nil
	}
	metrics.ProfileCacheMisses.Inc()

	profile, err := c.next.FindProfile(ctx, id)
	if err != nil {
		return userdomain.Profile{}, err
	}

	c.set(ctx, profile)
	return profile, nil
}

// Invalidate drops a cached profile after the user record changed.
func (c *CachedProfileSource) Invalidate(ctx context.Context, id userdomain.ID) error {
	opCtx, cancel := context.WithTimeout(ctx, constants.ProfileCacheOperationTimeout)
	defer cancel()

	if err := c.client.Del(opCtx, profileKey(id)).Err(); err != nil {
		metrics.ProfileCacheErrors.WithLabelValues("del").Inc()
		return err
	}
	return nil
}

func (c *CachedProfileSource) get(ctx context.Context, id userdomain.ID) (userdomain.Profile, bool) {
	opCtx, cancel := context.WithTimeout(ctx, constants.ProfileCacheOperationTimeout)
	defer cancel()

	raw, err := c.client.Get(opCtx, profileKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.ProfileCacheErrors.WithLabelValues("get").Inc()
			c.log.WithFields(ctx, logger.Fields{
				"user_id": id,
				"action":  "profile_cache_get_failed",
			}).Warnf("profile cache get failed: %v", err)
		}
		return userdomain.Profile{}, false
	}

	var cached cachedProfile
	if err := json.Unmarshal(raw, &cached); err != nil {
		metrics.ProfileCacheErrors.WithLabelValues("decode").Inc()
		c.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "profile_cache_decode_failed",
		}).Warnf("profile cache entry unreadable: %v", err)
		return userdomain.Profile{}, false
	}

	return userdomain.Profile{
		ID:          userdomain.ID(cached.ID),
		Username:    cached.Username,
		DisplayName: cached.DisplayName,
		Email:       cached.Email,
		CreatedAt:   cached.CreatedAt,
	}, true
}

func (c *CachedProfileSource) set(ctx context.Context, profile userdomain.Profile) {
	data, err := json.Marshal(cachedProfile{
		ID:          string(profile.ID),
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		CreatedAt:   profile.CreatedAt,
	})
	if err != nil {
		metrics.ProfileCacheErrors.WithLabelValues("encode").Inc()
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, constants.ProfileCacheOperationTimeout)
	defer cancel()

	if err := c.client.Set(opCtx, profileKey(profile.ID), data, c.ttl).Err(); err != nil {
		metrics.ProfileCacheErrors.WithLabelValues("set").Inc()
		c.log.WithFields(ctx, logger.Fields{
			"user_id": profile.ID,
			"action":  "profile_cache_set_failed",
		}).Warnf("profile cache set failed: %v", err)
	}
}
