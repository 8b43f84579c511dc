package newsapi

import (
	"fmt"
	"strings"
)

// ErrorKind partitions provider failures into the variants callers render.
type ErrorKind string

const (
	// ErrorKindHTTP is a non-2xx response from the provider endpoint.
	ErrorKindHTTP ErrorKind = "http"
	// ErrorKindTransport is a network-level failure (dial, DNS, timeout).
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindProvider is a well-formed payload whose status field is "error".
	ErrorKindProvider ErrorKind = "provider"
)

// Error is the closed set of expected search failures. Anything the client
// returns that is not an *Error is an unexpected failure and is the
// caller's catch-all case.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ErrorKindHTTP:
		return fmt.Sprintf("newsapi: http status %d: %s", e.StatusCode, e.Body)
	case ErrorKindTransport:
		return fmt.Sprintf("newsapi: request failed: %s", e.message())
	case ErrorKindProvider:
		return fmt.Sprintf("newsapi: provider error: %s", e.message())
	default:
		return fmt.Sprintf("newsapi: %s", e.message())
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *Error) message() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	return msg
}
