package kernel

import "time"

// schedulerOptions holds configuration applied to a Scheduler at
// construction.
type schedulerOptions struct {
	logger          Logger
	diagnosticRates map[time.Duration]int
}

// Option configures a Scheduler instance.
type Option interface {
	applyScheduler(*schedulerOptions)
}

type optionFunc func(*schedulerOptions)

func (f optionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithLogger attaches a structured diagnostics sink.
func WithLogger(l Logger) Option {
	return optionFunc(func(o *schedulerOptions) { o.logger = l })
}

// WithDiagnosticRateLimit caps how often repeated warnings of the same
// category (keyed by message format, e.g. retroactive-schedule rejections)
// are emitted through the scheduler's logger, using the same
// sliding-window shape as catrate.NewLimiter.
func WithDiagnosticRateLimit(rates map[time.Duration]int) Option {
	return optionFunc(func(o *schedulerOptions) { o.diagnosticRates = rates })
}

func resolveOptions(opts []Option) *schedulerOptions {
	cfg := &schedulerOptions{
		logger: NoOpLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = NoOpLogger{}
	}
	return cfg
}
