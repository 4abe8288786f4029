package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error surfaced to a view.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode lets middleware map the error to an HTTP status.
func (e *AppError) StatusCode() int {
	return e.Code
}

// ErrSessionExpired marks a 401 from the upstream API. The caller must clear
// the stored session and redirect to login with the expired flag; it is never
// rendered as a page-level error.
var ErrSessionExpired = errors.New("session expired")

// IsSessionExpired reports whether err wraps ErrSessionExpired.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// Upstream builds the error for a non-success upstream response. detail is
// the server-supplied message; empty falls back to a generic HTTP error.
func Upstream(status int, detail string) *AppError {
	if detail == "" {
		detail = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &AppError{Code: status, Message: detail}
}

// Unreachable is the connectivity failure shown with a retry control.
func Unreachable(err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: "Failed to connect to the server. Please ensure the backend is running.",
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: "internal error", Err: err}
}
