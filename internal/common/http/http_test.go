package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/AlibekovAA/survey-generator/internal/common/constants"
	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	"github.com/AlibekovAA/survey-generator/internal/observability/metrics"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "DEBUG")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return env
}

func TestTraceIDMiddleware(t *testing.T) {
	testCases := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"kept when well formed", "req-123.abc", true},
		{"replaced when malformed", "bad id\nwith newline", false},
		{"replaced when too long", strings.Repeat("a", 65), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = TraceIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(TraceIDHeader, tc.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("expected trace id in context")
			}
			if rec.Header().Get(TraceIDHeader) != seen {
				t.Errorf("expected header %q to match context %q", rec.Header().Get(TraceIDHeader), seen)
			}
			if tc.keep && seen != tc.incoming {
				t.Errorf("expected incoming trace id to be kept, got %q", seen)
			}
			if !tc.keep && seen == tc.incoming {
				t.Errorf("expected new trace id, got %q", seen)
			}
		})
	}
}

func TestErrorHandler_DomainError(t *testing.T) {
	handler := NewErrorHandler(testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/identity/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), constants.TraceIDKey, "trace-1"))
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, commonerrors.ErrUserNotFound.WithCause(errors.New("no rows")))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "USER_NOT_FOUND" {
		t.Errorf("expected code USER_NOT_FOUND, got %s", env.Code)
	}
	if env.TraceID != "trace-1" {
		t.Errorf("expected trace id trace-1, got %q", env.TraceID)
	}
	if strings.Contains(env.Message, "no rows") {
		t.Errorf("expected cause to stay out of the response, got %q", env.Message)
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	handler := NewErrorHandler(testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/identity/me", nil)
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, errors.New("password=hunter2"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "INTERNAL_ERROR" {
		t.Errorf("expected code INTERNAL_ERROR, got %s", env.Code)
	}
	if strings.Contains(env.Message, "hunter2") {
		t.Errorf("expected internal message, got %q", env.Message)
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()

	h := rl.Middleware(func(r *http.Request) string {
		return r.Header.Get("X-Caller")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(caller string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/identity/me", nil)
		req.Header.Set("X-Caller", caller)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("a"); code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, code)
		}
	}
	if code := call("a"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", code)
	}
	if code := call("b"); code != http.StatusNoContent {
		t.Errorf("expected other key to be unaffected, got %d", code)
	}
}

func blockedCount(t *testing.T, path string) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.RateLimitBlocked.WithLabelValues(path).Write(&m); err != nil {
		t.Fatalf("read metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRateLimiter_BlockedMetricUsesNormalizedPath(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	h := rl.Middleware(func(*http.Request) string { return "same" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	const rawPath = "/api/identity/users/0b6d4f7e-3c2a-4e19-8f5d-7a1b9c2e4d60"
	const normalized = "/api/identity/users/{id}"
	before := blockedCount(t, normalized)

	for i := 0; i < 2; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, rawPath, nil))
	}

	if got := blockedCount(t, normalized) - before; got != 1 {
		t.Errorf("expected one blocked request under %s, got %v", normalized, got)
	}
	if got := blockedCount(t, rawPath); got != 0 {
		t.Errorf("expected no series for the raw path, got %v", got)
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop()
	if !rl.Allow("k") {
		t.Error("expected Allow to keep working after Stop")
	}
}

func TestGetClientIP_IgnoresForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	req.Header.Set("X-Real-IP", "1.2.3.4")
	req.Header.Set("X-Forwarded-For", "5.6.7.8")

	if got := GetClientIP(req); got != "9.9.9.9" {
		t.Errorf("expected peer address, got %q", got)
	}
}

func TestClientIPResolver(t *testing.T) {
	resolver, err := NewClientIPResolver([]string{"10.0.0.0/8", "::1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	testCases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"untrusted peer spoofing real ip", map[string]string{"X-Real-IP": "1.2.3.4"}, "9.9.9.9:1", "9.9.9.9"},
		{"untrusted peer spoofing forwarded", map[string]string{"X-Forwarded-For": "5.6.7.8"}, "9.9.9.9:1", "9.9.9.9"},
		{"trusted proxy real ip", map[string]string{"X-Real-IP": "1.2.3.4"}, "10.1.2.3:1", "1.2.3.4"},
		{"trusted proxy forwarded", map[string]string{"X-Forwarded-For": "5.6.7.8"}, "10.1.2.3:1", "5.6.7.8"},
		{"client prepends fake hop", map[string]string{"X-Forwarded-For": "6.6.6.6, 5.6.7.8, 10.0.0.2"}, "10.1.2.3:1", "5.6.7.8"},
		{"trusted ipv6 proxy", map[string]string{"X-Forwarded-For": "5.6.7.8"}, "[::1]:1234", "5.6.7.8"},
		{"trusted proxy without headers", nil, "10.1.2.3:1", "10.1.2.3"},
		{"malformed forwarded hop", map[string]string{"X-Forwarded-For": "not-an-ip"}, "10.1.2.3:1", "10.1.2.3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := resolver.ClientIP(req); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewClientIPResolver_Invalid(t *testing.T) {
	for _, raw := range []string{"10.0.0.0/33", "proxy.local"} {
		if _, err := NewClientIPResolver([]string{raw}); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestClientIPResolver_NoProxiesUsesPeer(t *testing.T) {
	resolver, err := NewClientIPResolver(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:80"
	req.Header.Set("X-Forwarded-For", "5.6.7.8")

	if got := resolver.ClientIP(req); got != "127.0.0.1" {
		t.Errorf("expected peer address, got %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestMaxRequestSizeMiddleware(t *testing.T) {
	h := MaxRequestSizeMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	checks := map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	}

	rec := httptest.NewRecorder()
	HealthHandler(testLogger(), checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	checks["redis"] = func(context.Context) error { return errors.New("dial tcp: refused") }
	rec = httptest.NewRecorder()
	HealthHandler(testLogger(), checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redis":"down"`) {
		t.Errorf("expected redis to be reported down, got %s", rec.Body.String())
	}
}
