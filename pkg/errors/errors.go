package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the different kinds of failure the client reports
type ErrorType string

const (
	ErrorTypeMissingParameter       ErrorType = "missing_parameter"
	ErrorTypeInvalidParameter       ErrorType = "invalid_parameter"
	ErrorTypeUnsupportedProfileType ErrorType = "unsupported_profile_type"
	ErrorTypeAuthenticationFailed   ErrorType = "authentication_failed"
	ErrorTypeRemoteRequestFailed    ErrorType = "remote_request_failed"
	ErrorTypeNetwork                ErrorType = "network"
	ErrorTypeParsing                ErrorType = "parsing"
)

// Error represents a client error with type information
type Error struct {
	Type    ErrorType
	Message string
	// Code is the HTTP status code when one was received, 0 otherwise
	Code int
	// Body holds the raw response body for remote failures
	Body string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// MissingParameter reports a required input that was empty or zero
func MissingParameter(name string) *Error {
	return &Error{
		Type:    ErrorTypeMissingParameter,
		Message: fmt.Sprintf("required parameter %q is missing", name),
	}
}

// InvalidParameter reports an input whose value is outside the accepted set
func InvalidParameter(name, value string) *Error {
	return &Error{
		Type:    ErrorTypeInvalidParameter,
		Message: fmt.Sprintf("invalid value %q for parameter %q", value, name),
	}
}

// UnsupportedProfileType reports a profile identifier an operation cannot accept
func UnsupportedProfileType(profileType, operation string) *Error {
	return &Error{
		Type:    ErrorTypeUnsupportedProfileType,
		Message: fmt.Sprintf("profile type %q is not supported by %s", profileType, operation),
	}
}

// AuthenticationFailed reports a failed token exchange
func AuthenticationFailed(err error) *Error {
	return &Error{
		Type:    ErrorTypeAuthenticationFailed,
		Message: "could not obtain access token",
		Err:     err,
	}
}

// RemoteRequestFailed reports a data call answered with an error status
func RemoteRequestFailed(status int, body []byte) *Error {
	return &Error{
		Type:    ErrorTypeRemoteRequestFailed,
		Message: "remote request failed",
		Code:    status,
		Body:    string(body),
	}
}

// Is reports whether err is (or wraps) an *Error of the given type
func Is(err error, errorType ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errorType
	}
	return false
}

func IsMissingParameter(err error) bool {
	return Is(err, ErrorTypeMissingParameter)
}

func IsAuthenticationFailed(err error) bool {
	return Is(err, ErrorTypeAuthenticationFailed)
}

func IsUnsupportedProfileType(err error) bool {
	return Is(err, ErrorTypeUnsupportedProfileType)
}

func IsRemoteRequestFailed(err error) bool {
	return Is(err, ErrorTypeRemoteRequestFailed)
}

// StatusCode extracts the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
