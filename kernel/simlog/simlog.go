// Package simlog wires kernel.Logger to logiface, using stumpy's JSON
// writer as the default backend. Every record carries the tick, phase,
// group-id, and component that diagnosed it, matching the field set the
// scheduler's own Warnf diagnostics expect to be able to correlate against.
package simlog

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/sparcians/simkernel/kernel"
)

// Logger adapts a logiface.Logger to kernel.Logger.
type Logger struct {
	l *logiface.Logger[*stumpy.Event]
}

var _ kernel.Logger = (*Logger)(nil)

// New constructs a Logger writing newline-delimited JSON via stumpy.
// Passing no options defaults to os.Stderr, matching stumpy's own default.
func New(options ...stumpy.Option) *Logger {
	return &Logger{l: stumpy.L.New(stumpy.L.WithStumpy(options...))}
}

// Warnf logs a free-form warning at warning level.
func (x *Logger) Warnf(format string, args ...any) {
	x.l.Warning().Log(fmt.Sprintf(format, args...))
}

// Record logs one scheduler firing event at informational level, tagged
// with the (tick, phase, group-id, component) coordinates that identify
// its place in the firing order.
func (x *Logger) Record(tick uint64, phase kernel.Phase, groupID int, component, msg string) {
	x.l.Info().
		Uint64(`tick`, tick).
		Str(`phase`, phase.String()).
		Int(`group`, groupID).
		Str(`component`, component).
		Log(msg)
}
