package domain

import "context"

type contextKey struct{}

var identityKey = contextKey{}

// WithIdentity stores id in ctx. A nil id is stored as Unauthorized.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	if id == nil {
		id = Unauthorized
	}
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the caller identity, or Unauthorized when none was
// stored.
func FromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Unauthorized
	}
	if id, ok := ctx.Value(identityKey).(Identity); ok && id != nil {
		return id
	}
	return Unauthorized
}
