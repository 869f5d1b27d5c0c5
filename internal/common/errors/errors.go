// internal/common/errors/errors.go

// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeUnknownCategory  ErrorCode = "UNKNOWN_CATEGORY"

	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"

	ErrCodeHistorySaveFailed   ErrorCode = "HISTORY_SAVE_FAILED"
	ErrCodeHistoryQueryFailed  ErrorCode = "HISTORY_QUERY_FAILED"
	ErrCodeHistoryNotFound     ErrorCode = "HISTORY_NOT_FOUND"
	ErrCodeSearchDisabled      ErrorCode = "SEARCH_DISABLED"
	ErrCodeSearchQueryFailed   ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeAccountNotFound     ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeAccountStoreFailed  ErrorCode = "ACCOUNT_STORE_FAILED"
	ErrCodeNotificationFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeNotificationsOff    ErrorCode = "NOTIFICATIONS_DISABLED"
	ErrCodeInvalidPhoneNumber  ErrorCode = "INVALID_PHONE_NUMBER"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the HTTP status it is surfaced with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeUnknownCategory, ErrCodeInvalidPhoneNumber:
		return http.StatusBadRequest
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeHistoryNotFound, ErrCodeAccountNotFound:
		return http.StatusNotFound
	case ErrCodeSearchDisabled, ErrCodeNotificationsOff:
		return http.StatusNotImplemented
	case ErrCodeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewInvalidInputError creates a non-retryable validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMethodNotAllowedError creates the 405 error for non-POST stream calls.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   method,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderError wraps a places-provider failure.
func NewProviderError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   "Places provider request failed",
		Details:   fmt.Sprintf("%s: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures any error is represented as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}
