package mcpderror

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error is the single error kind surfaced by the SDK. Every failure —
// network, non-success HTTP status, malformed response body, or local
// validation — is reported through it, with the underlying cause chained
// for diagnostics.
type Error struct {
	// Message is the human-readable description of the failure.
	Message string
	// StatusCode is the HTTP status of the failing response,
	// or 0 when the failure happened before a response was received.
	StatusCode int
	// Body is the raw response body, when one was available.
	Body string

	cause error
}

// New returns an Error with a formatted message and no cause.
func New(format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error with a formatted message, chaining err as the cause.
// When err itself carries an HTTP status and body, they are kept visible on
// the new error.
func Wrap(err error, format string, args ...any) *Error {
	e := &Error{
		Message: fmt.Sprintf(format, args...),
		cause:   err,
	}
	if inner := From(err); inner != nil {
		e.StatusCode = inner.StatusCode
		e.Body = inner.Body
	}
	return e
}

// WithResponse attaches the failing HTTP status and raw body to e.
func (e *Error) WithResponse(statusCode int, body string) *Error {
	e.StatusCode = statusCode
	e.Body = body
	return e
}

// WithCause chains err as the underlying cause of e.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

func (e *Error) Error() string {
	msg := e.Message
	// skip the status when the cause already reports it
	if e.StatusCode != 0 && From(e.cause) == nil {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.cause != nil {
		msg = msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// From returns the *Error in err's chain, or nil.
func From(err error) *Error {
	var me *Error
	if errors.As(err, &me) {
		return me
	}
	return nil
}

// StatusCode returns the HTTP status attached to err,
// or 0 when err carries none.
func StatusCode(err error) int {
	if me := From(err); me != nil {
		return me.StatusCode
	}
	return 0
}

// ResponseBody returns the raw response body attached to err,
// or empty when err carries none.
func ResponseBody(err error) string {
	if me := From(err); me != nil {
		return me.Body
	}
	return ""
}
