package client

import "fmt"

// ValidationError reports a local precondition failure. It is raised before
// any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NetworkError reports that a request could not complete at the transport
// level. The caller may retry; no state was changed locally.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// DomainError reports that the server rejected the request. Detail carries
// the server-provided message when the response body contained one;
// otherwise Body holds the raw payload.
type DomainError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Body)
}
