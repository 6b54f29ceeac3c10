package service

import (
	"context"
	"errors"

	auditdomain "github.com/AlibekovAA/survey-generator/internal/audit/domain"
	"github.com/AlibekovAA/survey-generator/internal/common/clock"
	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	identitydomain "github.com/AlibekovAA/survey-generator/internal/identity/domain"
	"github.com/AlibekovAA/survey-generator/internal/observability/metrics"
)

const (
	kindCreated  = "created"
	kindModified = "modified"
)

// Stamper fills in audit metadata on behalf of persistence code. The actor
// is the identity carried by the context and the time comes from the clock.
type Stamper struct {
	clock clock.Clock
	log   *logger.Logger
}

func NewStamper(clock clock.Clock, log *logger.Logger) *Stamper {
	return &Stamper{
		clock: clock,
		log:   log,
	}
}

func (s *Stamper) Created(ctx context.Context) (auditdomain.Stamp, error) {
	actor := identitydomain.FromContext(ctx)

	stamp, err := auditdomain.NewStamp(actor.ID(), s.clock.Now())
	if err != nil {
		s.reject(ctx, kindCreated, actor, err)
		return auditdomain.Stamp{}, err
	}

	s.record(ctx, kindCreated, actor)
	return stamp, nil
}

// Touched records a modification by the current caller on top of prev.
func (s *Stamper) Touched(ctx context.Context, prev auditdomain.Stamp) (auditdomain.Stamp, error) {
	actor := identitydomain.FromContext(ctx)

	stamp, err := prev.Modified(actor.ID(), s.clock.Now())
	if err != nil {
		s.reject(ctx, kindModified, actor, err)
		return auditdomain.Stamp{}, err
	}

	s.record(ctx, kindModified, actor)
	return stamp, nil
}

func (s *Stamper) record(ctx context.Context, kind string, actor identitydomain.Identity) {
	metrics.AuditStampsTotal.WithLabelValues(kind, callerLabel(actor)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"actor":  actor.ID(),
		"kind":   kind,
		"action": "audit_stamp_issued",
	}).Debug("audit stamp issued")
}

func (s *Stamper) reject(ctx context.Context, kind string, actor identitydomain.Identity, err error) {
	reason := "unknown"
	var de commonerrors.DomainError
	if errors.As(err, &de) {
		reason = de.Code()
	}
	metrics.AuditStampRejectedTotal.WithLabelValues(reason).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"actor":  actor.ID(),
		"kind":   kind,
		"reason": reason,
		"action": "audit_stamp_rejected",
	}).Warnf("audit stamp rejected: %v", err)
}

func callerLabel(actor identitydomain.Identity) string {
	if identitydomain.IsAuthenticated(actor) {
		return "authenticated"
	}
	return "unauthorized"
}
