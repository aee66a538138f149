// Package errors defines the error type the handlers translate into HTTP
// responses. Intake and assembly failures are 400s, transport failures 502;
// anything without an explicit status falls back to 500.
package errors

// ErrorWithStatusCode carries the HTTP status a failure should surface as.
// Message is user-facing and must not leak provider internals.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
