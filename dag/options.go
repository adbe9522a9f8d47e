package dag

// dagOptions holds configuration applied to a DAG at construction.
type dagOptions struct {
	earlyCycleDetection bool
	logger              Logger
}

// Option configures a DAG instance.
type Option interface {
	applyDAG(*dagOptions)
}

type optionFunc func(*dagOptions)

func (f optionFunc) applyDAG(o *dagOptions) { f(o) }

// WithEarlyCycleDetection enables or disables a DFS-based cycle check on
// every Link call, in addition to the cycle check Sort always performs.
// It costs O(V+E) per call, but surfaces a CycleError at the exact Link
// that introduces the cycle, which is useful during model bring-up. It
// defaults to enabled.
func WithEarlyCycleDetection(enabled bool) Option {
	return optionFunc(func(o *dagOptions) { o.earlyCycleDetection = enabled })
}

// WithLogger attaches a structured logger for DAG diagnostics.
func WithLogger(l Logger) Option {
	return optionFunc(func(o *dagOptions) { o.logger = l })
}

func resolveOptions(opts []Option) *dagOptions {
	cfg := &dagOptions{
		earlyCycleDetection: true,
		logger:              NoOpLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyDAG(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = NoOpLogger{}
	}
	return cfg
}
