package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned (wrapped in *UpstreamError) when the catalog answers 404.
	ErrNotFound = errors.New("catalog: not found")
	// ErrInvalidPayload marks responses that fail JSON decoding or schema validation.
	ErrInvalidPayload = errors.New("catalog: invalid payload")
	// ErrInvalidArgument marks calls rejected before any request is sent.
	ErrInvalidArgument = errors.New("catalog: invalid argument")
)

// UpstreamError describes a failed catalog request. StatusCode is 0 for
// transport failures.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("catalog request %s failed: %v", e.Endpoint, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("catalog request %s returned %d: %v", e.Endpoint, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("catalog request %s returned %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// temporary reports whether the request is worth another attempt.
func (e *UpstreamError) temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
