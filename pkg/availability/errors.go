package availability

import "errors"

var (
	// ErrInvalidInterval is returned when StartWatching is called with
	// a non-positive interval.
	ErrInvalidInterval = errors.New("watch interval must be positive")

	// ErrPollerClosed is returned when StartWatching is called after
	// Close.
	ErrPollerClosed = errors.New("poller is closed")

	errUnexpectedStatusCode = errors.New("unexpected status code from availability service")
)
