// Package domain defines the caller identity seen by services.
//
// Code that needs "who is calling" asks for an Identity and never gets nil:
// when no authenticated principal is available it receives Unauthorized,
// which answers every accessor with fixed values.
package domain

const (
	UnauthorizedID          = "unauthorized-user"
	UnauthorizedDisplayName = "Unauthorized User"
)

type Identity interface {
	ID() string
	DisplayName() string
	EmailAddress() string
}

// UnauthorizedIdentity stands in for a caller that could not be
// authenticated. It has no state, so every value is interchangeable.
type UnauthorizedIdentity struct{}

func (UnauthorizedIdentity) ID() string           { return UnauthorizedID }
func (UnauthorizedIdentity) DisplayName() string  { return UnauthorizedDisplayName }
func (UnauthorizedIdentity) EmailAddress() string { return "" }

var Unauthorized Identity = UnauthorizedIdentity{}

// AuthenticatedIdentity is built through NewAuthenticated so that its
// attributes have been validated.
type AuthenticatedIdentity struct {
	id          string
	displayName string
	email       string
}

func (a AuthenticatedIdentity) ID() string           { return a.id }
func (a AuthenticatedIdentity) DisplayName() string  { return a.displayName }
func (a AuthenticatedIdentity) EmailAddress() string { return a.email }

// IsAuthenticated is false for nil and for any UnauthorizedIdentity.
func IsAuthenticated(id Identity) bool {
	switch id.(type) {
	case nil, UnauthorizedIdentity, *UnauthorizedIdentity:
		return false
	default:
		return true
	}
}
