package cursorwire

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	// Protocol Errors (from server error responses)
	ErrorUnknown ErrorCode = iota
	ErrorUnsupportedVersion
	ErrorInvalidMessage
	ErrorBadRequest
	ErrorRoomNotFound
	ErrorInternalServer

	// Client-side Errors
	ErrorConnection
	ErrorDisconnected
	ErrorTimeout
	ErrorInvalidConfig
	ErrorNotConnected
	ErrorSerialization
	ErrorStaleHandle
	ErrorMalformedEvent
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorUnsupportedVersion:
		return "unsupported_version"
	case ErrorInvalidMessage:
		return "invalid_message"
	case ErrorBadRequest:
		return "bad_request"
	case ErrorRoomNotFound:
		return "room_not_found"
	case ErrorInternalServer:
		return "internal_error"
	case ErrorConnection:
		return "connection_error"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorTimeout:
		return "timeout"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorNotConnected:
		return "not_connected"
	case ErrorSerialization:
		return "serialization_error"
	case ErrorStaleHandle:
		return "stale_handle"
	case ErrorMalformedEvent:
		return "malformed_event"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// ParseErrorCode converts a protocol error code string to ErrorCode.
func ParseErrorCode(code string) ErrorCode {
	switch code {
	case "unsupported_version":
		return ErrorUnsupportedVersion
	case "invalid_message":
		return ErrorInvalidMessage
	case "bad_request":
		return ErrorBadRequest
	case "room_not_found":
		return ErrorRoomNotFound
	case "internal_error":
		return ErrorInternalServer
	default:
		return ErrorUnknown
	}
}

// CursorwireError is a structured error with code and context.
type CursorwireError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *CursorwireError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *CursorwireError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface for error comparison.
func (e *CursorwireError) Is(target error) bool {
	t, ok := target.(*CursorwireError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new CursorwireError with the given code and message.
func NewError(code ErrorCode, message string) *CursorwireError {
	return &CursorwireError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a CursorwireError.
func WrapError(code ErrorCode, message string, err error) *CursorwireError {
	return &CursorwireError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// FromProtocolError converts a protocol Error to CursorwireError.
func FromProtocolError(e *Error) *CursorwireError {
	if e == nil {
		return nil
	}
	return &CursorwireError{
		Code:    ParseErrorCode(e.Code),
		Message: e.Msg,
	}
}

// IsProtocolError checks if an error is a protocol error (from server).
func IsProtocolError(err error) bool {
	if err == nil {
		return false
	}
	var ce *CursorwireError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code >= ErrorUnsupportedVersion && ce.Code <= ErrorInternalServer
}

// IsConnectionError checks if an error is a connection-related error.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var ce *CursorwireError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Code == ErrorConnection || ce.Code == ErrorDisconnected || ce.Code == ErrorTimeout
}
