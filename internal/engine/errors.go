// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped inside EngineError
var (
	ErrBrowserNotFound = errors.New("chrome browser not found")
	ErrInvalidURL      = errors.New("invalid URL")
	ErrEmptyDocument   = errors.New("rendered document is empty")
)

// ErrorCode classifies a render or extraction failure
type ErrorCode string

const (
	// ErrCodeSession covers browser start, navigation, script and HTTP status failures
	ErrCodeSession ErrorCode = "SESSION_ERROR"
	// ErrCodeCardParse is confined to one card and never aborts a render
	ErrCodeCardParse    ErrorCode = "CARD_PARSE_ERROR"
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
)

// EngineError carries a failure code plus structured details for logging
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]any
}

func (e *EngineError) Error() string {
	if e.Underlying == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
}

func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is matches another *EngineError by code, or anything in the wrapped chain
func (e *EngineError) Is(target error) bool {
	var other *EngineError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates an EngineError with an empty detail set
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{Code: code, Message: message, Underlying: err, Details: map[string]any{}}
}

// SessionError reports a browser or transport failure for a whole render
func SessionError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeSession, message, err)
}

// CardParseError reports a failure confined to a single card
func CardParseError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeCardParse, message, err)
}

// WithDetail records key=value on e and returns e for chaining
func (e *EngineError) WithDetail(key string, value any) *EngineError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the first EngineError in err's chain, or "" if none
func CodeOf(err error) ErrorCode {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
