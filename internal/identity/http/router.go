package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	auditdomain "github.com/AlibekovAA/survey-generator/internal/audit/domain"
	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
	commonhttp "github.com/AlibekovAA/survey-generator/internal/common/http"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	"github.com/AlibekovAA/survey-generator/internal/identity/domain"
)

type Stamper interface {
	Created(ctx context.Context) (auditdomain.Stamp, error)
	Touched(ctx context.Context, prev auditdomain.Stamp) (auditdomain.Stamp, error)
}

type Handler struct {
	stamper Stamper
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
}

type meResponse struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
	Authenticated bool   `json:"authenticated"`
}

type stampRequest struct {
	Previous *auditdomain.Stamp `json:"previous,omitempty"`
}

type stampResponse struct {
	Stamp auditdomain.Stamp `json:"stamp"`
}

func NewHandler(stamper Stamper, requestTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		stamper: stamper,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
	}

	withTimeout := commonhttp.WithTimeout(requestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/identity/me", commonhttp.RequireMethod(http.MethodGet)(withTimeout(h.me)))
	mux.HandleFunc("/api/identity/stamps", commonhttp.RequireMethod(http.MethodPost)(withTimeout(h.stamp)))

	return mux
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity := domain.FromContext(r.Context())

	commonhttp.WriteJSON(w, http.StatusOK, meResponse{
		ID:            identity.ID(),
		DisplayName:   identity.DisplayName(),
		Email:         identity.EmailAddress(),
		Authenticated: domain.IsAuthenticated(identity),
	})
}

// stamp issues a creation stamp, or a modification stamp on top of the
// previous one when the body carries it. An empty body counts as creation.
func (h *Handler) stamp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req stampRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		if _, ok := commonerrors.AsDomainError(err); ok {
			h.errors.HandleError(w, r, err)
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			commonhttp.WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, commonhttp.CodeRequestTooLarge, "request body too large", nil, commonhttp.TraceIDFromContext(ctx))
			return
		}
		h.log.WithFields(ctx, logger.Fields{
			"action": "stamp_decode_failed",
		}).Debugf("invalid stamp request: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, commonhttp.TraceIDFromContext(ctx))
		return
	}

	var (
		stamp  auditdomain.Stamp
		err    error
		status = http.StatusCreated
	)
	if req.Previous == nil {
		stamp, err = h.stamper.Created(ctx)
	} else {
		stamp, err = h.stamper.Touched(ctx, *req.Previous)
		status = http.StatusOK
	}
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, status, stampResponse{Stamp: stamp})
}
