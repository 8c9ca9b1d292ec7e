package client

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by client operations.
// Check with errors.Is.
var (
	// ErrNotConfigured is returned when an operation requires a secret key
	// and none has been set. No request is issued in that case.
	ErrNotConfigured = errors.New("analytics: server not set up")

	// ErrNotFound is returned on a 404 response, and by the session and
	// event paths when no secret key is set.
	ErrNotFound = errors.New("analytics: server not found")

	// ErrRateLimited is returned on a 429 response.
	ErrRateLimited = errors.New("analytics: rate limited")
)

// ResponseError reports a non-2xx status outside the sentinel taxonomy.
// Message carries the service-supplied description when the error body
// contained one.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("analytics: unexpected status code %d (%s)", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analytics: unexpected status code (%d)", e.StatusCode)
}

// TransportError reports that a request produced no usable response at all.
// It is always distinct from the status-code taxonomy above.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "analytics: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
