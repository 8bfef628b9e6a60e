package backend

import "fmt"

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}
