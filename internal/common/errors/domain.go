package commonerrors

import "net/http"

var (
	ErrInvalidAuditActor = NewDomainError(
		"INVALID_AUDIT_ACTOR",
		CategoryValidation,
		http.StatusBadRequest,
		"audit actor cannot be empty",
	)

	ErrAuditModifiedBeforeCreated = NewDomainError(
		"AUDIT_MODIFIED_BEFORE_CREATED",
		CategoryValidation,
		http.StatusBadRequest,
		"modification time precedes creation time",
	)

	ErrAuditMissingCreatedOn = NewDomainError(
		"AUDIT_MISSING_CREATED_ON",
		CategoryValidation,
		http.StatusBadRequest,
		"creation time must be set",
	)

	ErrAuditIncompleteModification = NewDomainError(
		"AUDIT_INCOMPLETE_MODIFICATION",
		CategoryValidation,
		http.StatusBadRequest,
		"modified by and modified on must be set together",
	)

	ErrInvalidIdentity = NewDomainError(
		"INVALID_IDENTITY",
		CategoryValidation,
		http.StatusBadRequest,
		"identity attributes are not valid",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrInvalidTokenSigningMethod = NewDomainError(
		"INVALID_TOKEN_SIGNING_METHOD",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token signing method",
	)

	ErrInvalidTokenClaims = NewDomainError(
		"INVALID_TOKEN_CLAIMS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token claims",
	)

	ErrMissingTokenClaims = NewDomainError(
		"MISSING_TOKEN_CLAIMS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing required token claims",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrCircuitOpen = NewDomainError(
		"CIRCUIT_OPEN",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"circuit breaker is open",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
