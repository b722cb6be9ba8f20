package api

import "encoding/json"

// decode unmarshals a 2xx response body into T. Unknown object keys are
// accepted, matching the API's habit of growing new fields. A mismatch is a
// ValidationError carrying the underlying diagnostics, never a bare
// json error.
func decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		var zero T
		return zero, &ValidationError{Message: "invalid API response", Details: err}
	}
	return v, nil
}
