package pool

import "go.uber.org/zap"

type options struct {
	workers int
	log     *zap.Logger
}

type Option func(*options)

// WithWorkers overrides the worker count. Values below one are raised to one.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used to report recovered job panics.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
