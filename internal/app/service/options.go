package service

import (
	"io"
	"time"
)

// Clock returns the current time. Services take it so expiry can be tested.
type Clock func() time.Time

type options struct {
	clock   Clock
	entropy io.Reader
}

type Option func(*options)

func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithEntropy replaces crypto/rand as the source of generated aliases.
func WithEntropy(r io.Reader) Option {
	return func(o *options) {
		o.entropy = r
	}
}

func applyOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
