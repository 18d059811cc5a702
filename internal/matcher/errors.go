package matcher

import "fmt"

// ValidationError reports a request the service rejected as invalid (a 4xx
// status with a structured detail message). The detail is meant to be shown
// to the user verbatim so they can correct the input and resubmit.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "the service rejected the request"
	}
	return e.Detail
}

// AuthError reports a missing, invalid or expired credential.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "authorization failed"
	}
	return e.Detail
}

// ServerError covers non-success statuses without a usable detail message and
// success responses with a malformed payload.
type ServerError struct {
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return "the service returned an unexpected response"
	}
	return e.Detail
}

// TransportError wraps a network-level failure: the service was never
// reached, so there is no status or detail to report.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach the service: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
