// Package apperror defines the request-level error taxonomy and its HTTP mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds, matchable with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrTranscode  = errors.New("transcode failed")
	ErrStore      = errors.New("object store failed")
)

// Error is a request error carrying the status and the client-facing message.
type Error struct {
	Kind    error
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Validation creates a 400 error whose message is shown to the client.
func Validation(message string) *Error {
	return &Error{
		Kind:    ErrValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// Transcode creates a 500 error that echoes the underlying cause.
func Transcode(err error) *Error {
	return &Error{
		Kind:    ErrTranscode,
		Message: fmt.Sprintf("image compression failed: %v", err),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Store creates a 500 error with a generic message; the cause stays server side.
func Store(message string, err error) *Error {
	return &Error{
		Kind:    ErrStore,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text safe to send to a client.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
