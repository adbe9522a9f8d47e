package arena

// poolOptions holds configuration applied to a Pool at construction.
type poolOptions struct {
	onOverflow  func(err error)
	onWatermark func(live, watermark int)
	logger      Logger
}

// Option configures a Pool instance.
type Option interface {
	applyPool(*poolOptions)
}

type optionFunc func(*poolOptions)

func (f optionFunc) applyPool(o *poolOptions) { f(o) }

// WithOverflowCallback installs the callback invoked when Allocate would
// exceed the pool's maxBlocks, before [ErrOutOfCapacity] is returned. The
// default callback panics with the error.
func WithOverflowCallback(fn func(err error)) Option {
	return optionFunc(func(o *poolOptions) { o.onOverflow = fn })
}

// WithWatermarkCallback installs the callback invoked exactly once per pool
// lifetime, the first time the live object count reaches or exceeds the
// configured watermark.
func WithWatermarkCallback(fn func(live, watermark int)) Option {
	return optionFunc(func(o *poolOptions) { o.onWatermark = fn })
}

// WithLogger attaches a structured logger for pool diagnostics, such as
// destruction with outstanding handles. See package kernel/simlog for the
// logiface-backed implementation used by the simulation kernel.
func WithLogger(l Logger) Option {
	return optionFunc(func(o *poolOptions) { o.logger = l })
}

func resolveOptions(opts []Option) *poolOptions {
	cfg := &poolOptions{
		onOverflow: func(err error) { panic(err) },
		logger:     NoOpLogger{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyPool(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = NoOpLogger{}
	}
	return cfg
}
