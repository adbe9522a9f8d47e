package kernel

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by kernel operations, named after the taxonomy
// of error kinds the scheduler's callers distinguish on.
var (
	// ErrConfig covers invalid constructor arguments.
	ErrConfig = errors.New("kernel: invalid configuration")

	// ErrOrderingConflict is surfaced from the underlying DAG's Finalize.
	ErrOrderingConflict = errors.New("kernel: ordering conflict")

	// ErrInvalidContinuation is returned when a PayloadEvent's Schedule or
	// Cancel is given a stale or already-fired/cancelled token.
	ErrInvalidContinuation = errors.New("kernel: invalid continuation token")

	// ErrNotFinalized is returned by Schedule before Finalize has run.
	ErrNotFinalized = errors.New("kernel: scheduler not finalized")

	// ErrClockInactive is returned by Schedule when the target's clock has
	// been deactivated.
	ErrClockInactive = errors.New("kernel: clock inactive")

	// ErrRetroactiveSchedule is returned when a handler, while the
	// scheduler is draining a (tick, phase) batch, inserts an entry for
	// that same batch with a smaller group-id than the one currently
	// firing.
	ErrRetroactiveSchedule = errors.New("kernel: retroactive schedule within current phase")

	// ErrLifecycleViolation is returned by Finalize, Run and BeginTeardown
	// when called from a state that does not allow them. Precedence edits
	// after Finalize fail with dag.ErrAlreadyFinalized instead.
	ErrLifecycleViolation = errors.New("kernel: lifecycle violation")

	// ErrUnschedulable is returned by Schedule when given a Scheduleable
	// that does not support the plain (no token) scheduling protocol, such
	// as a *PayloadEvent[T] — use its own Schedule method instead.
	ErrUnschedulable = errors.New("kernel: scheduleable requires a variant-specific schedule call")
)

// WrapError annotates cause with a message, preserving it for errors.Is/As.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
