package httpclient

import "fmt"

// StatusError reports a response with a non-2xx status code. The status code
// and raw body are preserved for diagnostics; retry policy is left to callers.
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("httpclient: unexpected status %d", e.StatusCode)
}
