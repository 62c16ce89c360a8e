package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors for client construction and use.
var (
	// ErrMissingToken is returned when the client is constructed without an
	// API token. Authentication is a process-start configuration concern,
	// not a per-call retry condition.
	ErrMissingToken = errors.New("API token is not configured")

	// ErrMissingBaseURL is returned when no service base URL is configured.
	ErrMissingBaseURL = errors.New("API base URL is not configured")
)

// APIError is a typed failure for any non-2xx response from the service.
// It carries enough context to report the failing call without re-reading
// the request.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is an APIError with 404 semantics, i.e. a
// referenced project, test or run identifier did not resolve.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an APIError with 409 semantics. The
// service answers 409 when a terminal run receives a second, conflicting
// completion.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsUnauthorized reports whether err is an APIError for a rejected token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
