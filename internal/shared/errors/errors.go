package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for the client layers
type ErrorType string

const (
	ErrorTypeTransport        ErrorType = "TRANSPORT_ERROR"
	ErrorTypeAPI              ErrorType = "API_ERROR"
	ErrorTypeNotAuthenticated ErrorType = "NOT_AUTHENTICATED"
	ErrorTypeValidation       ErrorType = "VALIDATION_ERROR"
	ErrorTypeInfrastructure   ErrorType = "INFRASTRUCTURE_ERROR"
)

// Codes attached to API errors for diagnostics
const (
	CodeMalformedEnvelope = "MALFORMED_ENVELOPE"
	CodeRejected          = "REJECTED"
	CodeHTTPStatus        = "HTTP_STATUS"
)

// Common application errors
var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrMalformedEnvelope = errors.New("malformed response envelope")
	ErrMissingToken      = errors.New("login response carries no token")
	ErrMissingUserID     = errors.New("login response carries no user id")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	HTTPCode  int                    `json:"-"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error returns the human-readable message. The cause is left to Unwrap so
// screens can show Message as-is.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrNotAuthenticated) match guard failures.
func (e *AppError) Is(target error) bool {
	return target == ErrNotAuthenticated && e.Type == ErrorTypeNotAuthenticated
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Common error constructors

// NewTransportError wraps a failure that happened before any response body existed.
func NewTransportError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeTransport, message, http.StatusBadGateway).WithCause(cause)
}

// NewAPIError creates an error for a failed or unreadable response envelope.
func NewAPIError(message string) *AppError {
	return NewAppError(ErrorTypeAPI, message, http.StatusBadGateway)
}

// NewNotAuthenticatedError is returned by the session guard when no token is held.
func NewNotAuthenticatedError(message string) *AppError {
	return NewAppError(ErrorTypeNotAuthenticated, message, http.StatusUnauthorized)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewInfrastructureError creates an infrastructure error
func NewInfrastructureError(message string) *AppError {
	return NewAppError(ErrorTypeInfrastructure, message, http.StatusInternalServerError)
}

// Helper functions for common error scenarios

// WrapError wraps an error with context
func WrapError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInfrastructureError(message).WithCause(err)
}

// AsAppError finds the first *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func typeOf(err error) (ErrorType, bool) {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type, true
	}
	return "", false
}

// IsTransport checks if an error is a transport error
func IsTransport(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeTransport
}

// IsAPI checks if an error came from a failed or malformed envelope
func IsAPI(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeAPI
}

// IsNotAuthenticated checks if an error is a guard failure
func IsNotAuthenticated(err error) bool {
	if t, ok := typeOf(err); ok {
		return t == ErrorTypeNotAuthenticated
	}
	return errors.Is(err, ErrNotAuthenticated)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrorTypeValidation
}

// IsMalformedEnvelope reports whether an API error was raised for an unreadable body.
func IsMalformedEnvelope(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeAPI && appErr.Code == CodeMalformedEnvelope
	}
	return false
}

// MessageOf returns the message a screen should display for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fmt.Sprint(err)
}

// StatusOf returns the HTTP status a gateway should answer with for err.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}
