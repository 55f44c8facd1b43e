package isosurface

import "math"

const (
	// DefaultPrecision is the default bisection bracket length at which
	// crossing point refinement stops.
	DefaultPrecision = 0.001
	// DefaultTiny is the default field value difference under which two
	// bracket ends are considered indistinguishable.
	DefaultTiny = 1e-7
)

type options struct {
	precision float64
	tiny      float64
	logger    *Logger
}

// Option configures crossing point computation and reporting.
type Option func(*options)

// WithPrecision sets the segment length at which bisection stops.
// It panics if precision is not a positive number.
func WithPrecision(precision float64) Option {
	if !(precision > 0) || math.IsInf(precision, 1) {
		panic("precision must be positive and finite")
	}
	return func(o *options) {
		o.precision = precision
	}
}

// WithTiny sets the field value difference below which bisection stops
// because the bracket can no longer be resolved numerically.
// It panics if tiny is negative or NaN.
func WithTiny(tiny float64) Option {
	if !(tiny >= 0) {
		panic("tiny must be non-negative")
	}
	return func(o *options) {
		o.tiny = tiny
	}
}

// WithLogger configures structured logging of degraded edges and
// extraction summaries. A nil logger disables logging.
func WithLogger(logger *Logger) Option {
	if logger == nil {
		logger = NoopLogger()
	}
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{
		precision: DefaultPrecision,
		tiny:      DefaultTiny,
		logger:    NoopLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
