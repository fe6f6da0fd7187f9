package leaveerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveTypeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is required",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveDays = apperror.New(
		apperror.CodeInvalidInput,
		"leave days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrStartDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start date is required",
		http.StatusBadRequest,
	)
	ErrEndDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"end date is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date must not be before start date",
		http.StatusBadRequest,
	)
	ErrReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"reason must be at least 10 characters",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be before today",
		http.StatusBadRequest,
	)
	ErrInvalidScheduleEdit = apperror.New(
		apperror.CodeInvalidInput,
		"edited field must be start_date, end_date or days",
		http.StatusBadRequest,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave record not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave record is already resolved",
		http.StatusBadRequest,
	)
	ErrQuotaExceeded = apperror.New(
		apperror.CodeConflict,
		"approval would exceed the annual leave quota",
		http.StatusConflict,
	)
)
