package clock

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by clock operations.
var (
	// ErrConfig is returned for an invalid ratio (zero denominator or zero
	// numerator).
	ErrConfig = errors.New("clock: invalid configuration")

	// ErrClockFrozen is returned by Derive on a clock after Freeze has been
	// called on that clock.
	ErrClockFrozen = errors.New("clock: frozen, cannot derive further children")

	// ErrClockInactive is returned when an operation targets a clock whose
	// owning scheduler has torn down.
	ErrClockInactive = errors.New("clock: inactive")
)

// WrapError annotates cause with a message, preserving it for errors.Is/As.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
