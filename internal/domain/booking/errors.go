package booking

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession           = errors.New("no authenticated session")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingNotConfirmed = errors.New("booking is not confirmed")
	ErrAlreadyClockedIn    = errors.New("booking is already clocked in")
	ErrAlreadyClockedOut   = errors.New("booking is already clocked out")
	ErrNotClockedIn        = errors.New("booking has not been clocked in")
)

// NetworkError is the catch-all category for infrastructure faults: storage
// errors, unresolvable shifts, anything outside the enumerated precondition
// failures. Callers may retry with backoff.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Err)
	}
	return "network error: " + e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func networkError(message string, err error) error {
	return &NetworkError{Message: message, Err: err}
}

// IsNetworkError reports whether err belongs to the transient catch-all
// category rather than one of the typed precondition failures.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
