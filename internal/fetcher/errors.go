package fetcher

import (
	"errors"
	"fmt"
	"net"
)

// TimeoutError reports a fetch that exceeded its deadline.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch timeout: %s: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure (DNS, connection, TLS).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch status %d: %s", e.StatusCode, e.URL)
}

// classify wraps a transport-layer error as timeout or transport.
func classify(url string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: url, Err: err}
	}
	return &TransportError{URL: url, Err: err}
}

// IsUnavailable reports whether err means the source could not be reached or
// did not answer successfully. All fetcher errors classify as unavailable;
// callers treat this as "try fallback or degrade", never as fatal.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var (
		timeout   *TimeoutError
		transport *TransportError
		status    *StatusError
	)
	return errors.As(err, &timeout) || errors.As(err, &transport) || errors.As(err, &status)
}
