package http

import (
	"net/http"

	"github.com/AlibekovAA/survey-generator/internal/common/constants"
	"github.com/AlibekovAA/survey-generator/internal/common/httpmetrics"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
)

// BuildBaseHandler wraps handler with the middleware every service shares.
// The trace id is assigned before recovery so panics are logged with it.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(TraceIDMiddleware(recovery(maxRequestSize(collector.Wrap(handler)))))
}
