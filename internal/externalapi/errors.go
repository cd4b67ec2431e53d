package externalapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind tags the way an outbound call failed.
type Kind string

const (
	KindTimeout   Kind = "timeout"
	KindTransport Kind = "transport"
	KindParse     Kind = "parse"
)

// Error is returned by Client for every failed call.
// Callers branch on Kind with errors.As instead of inspecting messages.
type Error struct {
	Kind Kind
	// Op is the client operation, "create" or "update".
	Op string
	// StatusCode is set when the service answered with a non-2xx status.
	StatusCode int
	// Body holds the response body text of a failed call, if any was returned.
	Body string
	Err  error
}

func (e *Error) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s error: %v: %s", e.Op, e.Kind, e.Err, e.Body)
	}
	return fmt.Sprintf("%s %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause returns the text of the underlying failure without the body.
func (e *Error) Cause() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// statusError describes a non-2xx answer.
func statusError(code int) error {
	return fmt.Errorf("the remote server returned an error: (%d) %s", code, http.StatusText(code))
}

// transportKind separates timeouts from other transport failures.
func transportKind(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}
