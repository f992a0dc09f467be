package sitechat

import (
	"errors"
	"fmt"
)

// Application error codes. They map one-to-one onto the failure modes of
// the retrieval pipeline so callers can branch on ErrorCode without
// inspecting error strings.
const (
	EINVALID     = "invalid"      // validation failed (e.g., empty question)
	ENOTFOUND    = "not_found"    // page or entity does not exist
	ETIMEOUT     = "timeout"      // operation exceeded its deadline
	ERATELIMITED = "rate_limited" // remote side asked us to back off
	EUNAVAILABLE = "unavailable"  // network failure or server error
	EEMPTY       = "empty"        // page yielded no meaningful text
	EMALFORMED   = "malformed"    // input could not be parsed
	ENORESULTS   = "no_results"   // retrieval produced no documents
	EINTERNAL    = "internal"     // unexpected internal error
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitechat error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
