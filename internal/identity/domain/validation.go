package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
)

type attributes struct {
	ID          string `validate:"required,max=128,ne=unauthorized-user"`
	DisplayName string `validate:"required,max=128"`
	Email       string `validate:"omitempty,email,max=254"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewAuthenticated trims its inputs and falls back to the id when the
// display name is empty. The sentinel unauthorized id is rejected.
func NewAuthenticated(id, displayName, email string) (AuthenticatedIdentity, error) {
	attrs := attributes{
		ID:          strings.TrimSpace(id),
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.TrimSpace(email),
	}
	if attrs.DisplayName == "" {
		attrs.DisplayName = attrs.ID
	}

	if err := validate.Struct(attrs); err != nil {
		return AuthenticatedIdentity{}, commonerrors.ErrInvalidIdentity.WithCause(err)
	}

	return AuthenticatedIdentity{
		id:          attrs.ID,
		displayName: attrs.DisplayName,
		email:       attrs.Email,
	}, nil
}
