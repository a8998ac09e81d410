package analyzer

import "time"

// Option configures an analysis call.
type Option func(*options)

type options struct {
	now func() time.Time
}

func newOptions(opts []Option) *options {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock sets the function used to stamp results with their analysis time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
