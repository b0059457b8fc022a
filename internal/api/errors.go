package api

import "fmt"

// RequestError represents a transport-level failure: the request never
// produced a usable response (connection refused, DNS failure, timeout).
type RequestError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("request error for %s: %s", e.Path, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ServerError represents a response the backend produced but rejected:
// either an envelope with status "error" or a bare HTTP error status.
type ServerError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error for %s: HTTP %d", e.Path, e.StatusCode)
}

// IsUnauthorized reports whether the error is a 401 rejection.
func IsUnauthorized(err error) bool {
	se, ok := err.(*ServerError)
	return ok && se.StatusCode == 401
}
