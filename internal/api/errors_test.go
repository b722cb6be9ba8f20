package api

import (
	"errors"
	"testing"
)

func TestAPIErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "with status",
			err:      &APIError{Message: "Invalid query", Status: 400},
			expected: "Invalid query (status 400)",
		},
		{
			name:     "transport failure has no status suffix",
			err:      &APIError{Message: "failed to connect to https://sentry.io"},
			expected: "failed to connect to https://sentry.io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIErrorNotFound(t *testing.T) {
	if !(&APIError{Status: 404}).NotFound() {
		t.Error("404 not reported as NotFound")
	}
	if (&APIError{Status: 400}).NotFound() {
		t.Error("400 reported as NotFound")
	}
	if (&APIError{}).NotFound() {
		t.Error("transport failure reported as NotFound")
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("connection reset")

	apiErr := &APIError{Message: "request failed", Cause: cause}
	if !errors.Is(apiErr, cause) {
		t.Error("APIError does not unwrap to its cause")
	}

	authErr := &AuthError{Message: "bad token", Cause: apiErr}
	var inner *APIError
	if !errors.As(authErr, &inner) {
		t.Error("AuthError does not unwrap to *APIError")
	}

	valErr := &ValidationError{Message: "unexpected shape", Details: cause}
	if valErr.Error() != "unexpected shape: connection reset" {
		t.Errorf("Error() = %q", valErr.Error())
	}
	if (&ValidationError{Message: "bare"}).Error() != "bare" {
		t.Errorf("bare validation error formatting broken")
	}
}
