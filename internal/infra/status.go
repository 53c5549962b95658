package infra

import (
	"fmt"
	"net/http"
)

// StatusError is returned when a device answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: device returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: device returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// CheckStatus returns a *StatusError for any non-2xx response.
func CheckStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &StatusError{
		Method:     resp.Request.Method,
		Path:       resp.Request.URL.Path,
		StatusCode: resp.StatusCode,
		Body:       truncate(string(body), 200),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
