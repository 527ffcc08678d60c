// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Request errors
	ErrInvalidRequest = &Error{Code: "INVALID_REQUEST", Message: "invalid chat request"}

	// Provider resolution errors
	ErrUnknownProvider  = &Error{Code: "UNKNOWN_PROVIDER", Message: "unknown provider"}
	ErrUnsupportedModel = &Error{Code: "UNSUPPORTED_MODEL", Message: "model not supported by provider"}

	// Provider call errors
	ErrProviderUnavailable = &Error{Code: "PROVIDER_UNAVAILABLE", Message: "provider unreachable or timed out"}
	ErrProviderRejected    = &Error{Code: "PROVIDER_REJECTED", Message: "provider rejected the request"}
	ErrChatFailed          = &Error{Code: "CHAT_FAILED", Message: "chat request failed"}

	// Store errors
	ErrNotFound    = &Error{Code: "NOT_FOUND", Message: "record not found"}
	ErrStoreFailed = &Error{Code: "STORE_FAILED", Message: "persistent store operation failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// API errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "invalid or missing API key"}
)
