package api

import (
	"fmt"
	"net/http"
)

// APIError represents a failed request: a transport failure (Status is zero)
// or a non-2xx response (Status carries the HTTP code).
type APIError struct {
	Message string
	Status  int
	Cause   error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NotFound reports whether the server answered 404. Callers use this to
// implement "treat as absent" fallbacks.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// ValidationError means the server answered 2xx but the body did not match the
// expected shape. Kept separate from APIError: the request itself succeeded.
type ValidationError struct {
	Message string
	Details error
}

func (e *ValidationError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Details)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Details
}

// AuthError marks credential problems so the top-level handler can suggest
// re-authenticating.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}
