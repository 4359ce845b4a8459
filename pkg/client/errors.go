package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork covers connection failures, timeouts and an open circuit.
	ErrNetwork = errors.New("network error")
	// ErrAuth is returned for 401 and 403 responses.
	ErrAuth = errors.New("authentication required")
	// ErrNotFound is returned for 404 responses and empty id lookups.
	ErrNotFound = errors.New("not found")
	// ErrRejected is returned for any other 4xx response.
	ErrRejected = errors.New("request rejected")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")

	// ErrEmptyResponse is returned when a write succeeds without echoing the
	// saved record. The write may have been applied.
	ErrEmptyResponse = errors.New("empty response")

	ErrCircuitOpen = errors.New("api circuit open")
	ErrClosed      = errors.New("client closed")
)

// APIError describes one failed call. Status is zero when no response was received.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string

	kind error
	err  error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// Unwrap exposes both the taxonomy sentinel and the transport cause.
func (e *APIError) Unwrap() []error {
	if e.err != nil {
		return []error{e.kind, e.err}
	}
	return []error{e.kind}
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuth
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return ErrRejected
	}
}

// retryable reports whether another attempt could succeed. Only transport
// failures qualify; a 5xx may already have been applied.
func retryable(err error) bool {
	return errors.Is(err, ErrNetwork) && !errors.Is(err, ErrCircuitOpen) && !errors.Is(err, ErrClosed)
}
