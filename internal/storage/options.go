package storage

import (
	"time"

	"github.com/google/uuid"
)

// Windows are the look-ahead durations of the expiring queries.
type Windows struct {
	Contracts time.Duration
	Probation time.Duration
}

var DefaultWindows = Windows{
	Contracts: 30 * 24 * time.Hour,
	Probation: 7 * 24 * time.Hour,
}

// Options are shared by every backend constructor.
type Options struct {
	Now     func() time.Time
	NewID   func() string
	Windows Windows
}

type Option func(*Options)

func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(o *Options) {
		if newID != nil {
			o.NewID = newID
		}
	}
}

// WithWindows overrides the expiry windows; zero durations keep the default.
func WithWindows(w Windows) Option {
	return func(o *Options) {
		if w.Contracts > 0 {
			o.Windows.Contracts = w.Contracts
		}
		if w.Probation > 0 {
			o.Windows.Probation = w.Probation
		}
	}
}

func BuildOptions(opts ...Option) Options {
	o := Options{
		Now:     func() time.Time { return time.Now().UTC() },
		NewID:   uuid.NewString,
		Windows: DefaultWindows,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
