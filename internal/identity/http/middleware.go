package http

import (
	"context"
	"net/http"

	commonhttp "github.com/AlibekovAA/survey-generator/internal/common/http"
	"github.com/AlibekovAA/survey-generator/internal/identity/domain"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, authHeader string) domain.Identity
}

// IdentityMiddleware resolves the caller once per request and stores it in
// the request context. Requests are never rejected here; handlers decide
// what an unauthorized caller may do.
func IdentityMiddleware(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			ctx := domain.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitKey buckets authenticated callers by id and everyone else by the
// client address that ips resolves.
func RateLimitKey(ips *commonhttp.ClientIPResolver) commonhttp.KeyFunc {
	return func(r *http.Request) string {
		identity := domain.FromContext(r.Context())
		if domain.IsAuthenticated(identity) {
			return "user:" + identity.ID()
		}
		return "ip:" + ips.ClientIP(r)
	}
}
