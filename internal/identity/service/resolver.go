package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
	"github.com/AlibekovAA/survey-generator/internal/common/jwtverify"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	"github.com/AlibekovAA/survey-generator/internal/common/resilience"
	"github.com/AlibekovAA/survey-generator/internal/identity/domain"
	"github.com/AlibekovAA/survey-generator/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/survey-generator/internal/user/domain"
)

type ProfileSource interface {
	FindProfile(ctx context.Context, id userdomain.ID) (userdomain.Profile, error)
}

// Resolver turns an Authorization header into the caller identity. It never
// fails: anything that cannot be authenticated resolves to Unauthorized.
type Resolver struct {
	secret   []byte
	profiles ProfileSource
	breaker  *resilience.CircuitBreaker
	log      *logger.Logger
}

func NewResolver(secret []byte, profiles ProfileSource, breaker *resilience.CircuitBreaker, log *logger.Logger) *Resolver {
	return &Resolver{
		secret:   secret,
		profiles: profiles,
		breaker:  breaker,
		log:      log,
	}
}

func (r *Resolver) Resolve(ctx context.Context, authHeader string) domain.Identity {
	start := time.Now()
	identity, outcome := r.resolve(ctx, authHeader)
	metrics.IdentityResolutionDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.IdentityResolutionsTotal.WithLabelValues(outcome).Inc()
	return identity
}

func (r *Resolver) resolve(ctx context.Context, authHeader string) (domain.Identity, string) {
	token, ok := jwtverify.BearerToken(authHeader)
	if !ok {
		return domain.Unauthorized, metrics.OutcomeMissingHeader
	}

	claims, err := jwtverify.ParseToken(token, r.secret)
	if err != nil {
		r.log.WithFields(ctx, logger.Fields{
			"action": "identity_token_rejected",
		}).Debugf("token rejected: %v", err)
		return domain.Unauthorized, metrics.OutcomeInvalidToken
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		r.log.WithFields(ctx, logger.Fields{
			"action": "identity_token_rejected",
		}).Debugf("token subject is not a uuid: %q", claims.UserID)
		return domain.Unauthorized, metrics.OutcomeInvalidToken
	}

	profile, err := r.lookup(ctx, userdomain.ID(claims.UserID))
	switch {
	case err == nil:
		identity, buildErr := domain.NewAuthenticated(string(profile.ID), profile.Name(), profile.Email)
		if buildErr == nil {
			return identity, metrics.OutcomeAuthenticated
		}
		r.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "identity_profile_invalid",
		}).Warnf("stored profile rejected: %v", buildErr)
	case errors.Is(err, commonerrors.ErrUserNotFound):
		r.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "identity_unknown_user",
		}).Info("token subject has no user record")
		return domain.Unauthorized, metrics.OutcomeUnknownUser
	default:
		r.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "identity_profile_unavailable",
		}).Warnf("profile lookup failed, using token claims: %v", err)
	}

	identity, err := domain.NewAuthenticated(claims.UserID, claims.Name(), claims.Email)
	if err != nil {
		return domain.Unauthorized, metrics.OutcomeInvalidProfile
	}
	return identity, metrics.OutcomeClaimsOnly
}

func (r *Resolver) lookup(ctx context.Context, id userdomain.ID) (userdomain.Profile, error) {
	if r.profiles == nil {
		return userdomain.Profile{}, commonerrors.ErrInternalError
	}

	var profile userdomain.Profile
	call := func(callCtx context.Context) error {
		var err error
		profile, err = r.profiles.FindProfile(callCtx, id)
		return err
	}

	var err error
	if r.breaker != nil {
		err = r.breaker.Call(ctx, call)
	} else {
		err = call(ctx)
	}
	return profile, err
}
