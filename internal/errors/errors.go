package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthCredentials   ErrorCode = "AUTH-001"
	ErrCodeAuthRefreshFailed ErrorCode = "AUTH-002"
	ErrCodeAuthNoSession     ErrorCode = "AUTH-003"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest      ErrorCode = "API-001"
	ErrCodeAPIStatus       ErrorCode = "API-002"
	ErrCodeAPIDecode       ErrorCode = "API-003"
	ErrCodeAPINotFound     ErrorCode = "API-004"
	ErrCodeAPIUnauthorized ErrorCode = "API-005"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
)

// ConsoleError represents an enhanced error with code, suggestions, and a cause
type ConsoleError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ConsoleError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ConsoleError) Unwrap() error {
	return e.Cause
}

// New creates a new ConsoleError
func New(code ErrorCode, message string) *ConsoleError {
	return &ConsoleError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ConsoleError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ConsoleError {
	return &ConsoleError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ConsoleError) WithSuggestion(suggestion string) *ConsoleError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ConsoleError) WithSuggestions(suggestions ...string) *ConsoleError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently used errors

// NewCredentialsError creates a rejected-login error
func NewCredentialsError() *ConsoleError {
	return New(ErrCodeAuthCredentials, "incorrect username or password").
		WithSuggestion("Check the username and password and try again")
}

// NewNoSessionError creates an error for commands that require a login
func NewNoSessionError() *ConsoleError {
	return New(ErrCodeAuthNoSession, "not logged in").
		WithSuggestion("Run 'petconsole auth login' to authenticate")
}

// NewRefreshFailedError creates a fatal token-refresh error
func NewRefreshFailedError(cause error) *ConsoleError {
	return Wrap(ErrCodeAuthRefreshFailed, "session refresh failed", cause).
		WithSuggestion("The session has been closed; run 'petconsole auth login' again")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *ConsoleError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Check ~/.petconsole/config.yaml").
		WithSuggestion("Unset PETCONSOLE_* environment overrides to fall back to defaults")
}
