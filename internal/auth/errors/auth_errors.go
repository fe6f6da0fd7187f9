package autherrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// secret. The two cases are indistinguishable on the wire.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"token is invalid",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrSessionExpired = apperror.New(
		"SESSION_EXPIRED",
		"session is no longer active",
		http.StatusUnauthorized,
	)
)
