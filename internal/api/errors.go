package api

import (
	"errors"
	"fmt"
)

// ErrorKind tells callers which stage of a request failed.
type ErrorKind int

const (
	// KindTransport covers failures before any HTTP response arrived: DNS,
	// refused connections, timeouts and cancellation.
	KindTransport ErrorKind = iota + 1
	// KindHTTP is a non-2xx response.
	KindHTTP
	// KindApplication is a 2xx response whose envelope says success:false.
	KindApplication
	// KindParse is a 2xx response that is not valid JSON or does not match
	// the expected shape.
	KindParse
	// KindValidation is input rejected on the client before any network call.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindApplication:
		return "application"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the client. Error() is the
// human-readable message and is safe to show to the user verbatim.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status, set for KindHTTP and for KindApplication when known
	Route   string // route template, e.g. "/api/articles/{id}"
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail renders kind, route and status for logs, where Error() alone is too terse.
func (e *Error) Detail() string {
	s := fmt.Sprintf("%s error", e.Kind)
	if e.Route != "" {
		s += " on " + e.Route
	}
	if e.Status != 0 {
		s += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

func validationError(route, msg string) *Error {
	return &Error{Kind: KindValidation, Route: route, Message: msg}
}
