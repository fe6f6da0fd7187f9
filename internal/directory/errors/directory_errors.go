package directoryerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrUsernameTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"username must be at least 2 characters",
		http.StatusBadRequest,
	)
	ErrUserIDTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"userId must be at least 2 characters",
		http.StatusBadRequest,
	)
	ErrDepartmentTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"department must be at least 2 characters",
		http.StatusBadRequest,
	)
	ErrSecretTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"password must be at least 6 characters",
		http.StatusBadRequest,
	)
	ErrDuplicateUserID = apperror.New(
		apperror.CodeConflict,
		"userId already exists",
		http.StatusConflict,
	)
	ErrDuplicateUsername = apperror.New(
		apperror.CodeConflict,
		"username already exists",
		http.StatusConflict,
	)
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"account not found",
		http.StatusNotFound,
	)
)
