package domain

import "time"

type ID string

// Profile is the part of a user record needed to describe a caller.
type Profile struct {
	ID          ID
	Username    string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// Name prefers the display name and falls back to the username.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}
