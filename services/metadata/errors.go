package metadata

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPStatusError reports a non-2xx response from the upstream API.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "upstream HTTP status error"
	}
	return fmt.Sprintf("tmdb %s: HTTP %d", e.Endpoint, e.StatusCode)
}

// Temporary reports whether retrying could help (rate limited or server error).
func (e *HTTPStatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
