package jwtverify

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
)

const bearerPrefix = "Bearer "

type Claims struct {
	UserID      string
	Username    string
	DisplayName string
	Email       string
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

// ParseToken accepts HS256 tokens with an expiry and a sub claim. usr,
// name and email are optional.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, commonerrors.ErrInvalidTokenSigningMethod
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, commonerrors.ErrInvalidTokenClaims
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	username, _ := mapClaims["usr"].(string)
	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)

	return Claims{
		UserID:      sub,
		Username:    username,
		DisplayName: name,
		Email:       email,
	}, nil
}

// Name prefers the name claim and falls back to usr.
func (c Claims) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Username
}
