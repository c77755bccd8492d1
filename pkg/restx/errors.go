package restx

import (
	"errors"
	"fmt"
)

// ErrTransport is matched by every error caused by talking to the remote side.
var ErrTransport = errors.New("restx: transport failure")

// maxErrorBody bounds how much of a response body ends up in an error string.
const maxErrorBody = 256

// StatusError is returned when the remote answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := string(e.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	if body == "" {
		return fmt.Sprintf("restx: %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("restx: %s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, body)
}

// Is makes every StatusError match ErrTransport.
func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
