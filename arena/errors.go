package arena

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Pool operations. Use [errors.Is] to match
// against them through any wrapping applied by WrapError.
var (
	// ErrConfig is returned by New when the supplied configuration is
	// invalid, e.g. watermark exceeds maxBlocks.
	ErrConfig = errors.New("arena: invalid configuration")

	// ErrOutOfCapacity is returned by Allocate when the pool's live object
	// count would exceed maxBlocks.
	ErrOutOfCapacity = errors.New("arena: out of capacity")

	// ErrDestroyedWithOutstanding is logged and returned by Pool.Close when
	// objects are still live (some SharedHandle has not been closed).
	// Outstanding WeakHandles alone do not trigger it.
	ErrDestroyedWithOutstanding = errors.New("arena: pool destroyed with outstanding handles")
)

// WrapError wraps an error with a message, preserving the cause for
// [errors.Is] and [errors.As].
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
