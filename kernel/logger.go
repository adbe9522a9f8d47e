package kernel

// Logger is the scheduler's pluggable diagnostics sink. Records carry the
// tick/phase/group-id/component context needed to correlate a diagnostic
// back to the firing it came from; kernel/simlog provides a
// logiface+stumpy-backed implementation.
type Logger interface {
	Warnf(format string, args ...any)
	Record(tick uint64, phase Phase, groupID int, component, msg string)
}

// NoOpLogger discards all diagnostics. It is the Scheduler's default.
// Its Warnf method alone also satisfies arena.Logger and dag.Logger, so a
// kernel.Logger can be passed straight through to the packages it
// composes.
type NoOpLogger struct{}

func (NoOpLogger) Warnf(string, ...any)                      {}
func (NoOpLogger) Record(uint64, Phase, int, string, string) {}
