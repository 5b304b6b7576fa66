package faceit

import "fmt"

// HTTPError is returned when the API answers with a non-success status.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// MissingDataError reports a required response field that was absent or
// malformed.
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	return "missing data: " + e.Field
}
