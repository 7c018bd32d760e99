// Package normalize maps platform payloads onto canonical documents
// Every strategy is a pure function of its input: no I/O, no shared mutable state.
// The only side channel is the injected Observer, which sees one Diagnostic per
// successful call
package normalize

import (
	"context"

	"socialnorm/internal/core/canonical"
)

// Normalizer converts one raw platform record into a canonical document
type Normalizer interface {
	Platform() canonical.Platform
	Normalize(ctx context.Context, raw []byte) (canonical.Document, error)
}

// Diagnostic is the observational record of a successful normalization
// It is not part of the document contract
type Diagnostic struct {
	Platform  canonical.Platform
	Type      canonical.Type
	Subreddit string
	Query     string
	Count     int
}

// Observer receives diagnostics, implementations must be safe for concurrent use
type Observer interface {
	Observe(ctx context.Context, d Diagnostic)
}

// ObserverFunc adapts a plain func to Observer
type ObserverFunc func(ctx context.Context, d Diagnostic)

// Observe implements Observer
func (f ObserverFunc) Observe(ctx context.Context, d Diagnostic) { f(ctx, d) }

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Diagnostic) {}

// Nop returns an Observer that drops everything
func Nop() Observer { return nopObserver{} }

// Fanout forwards each diagnostic to every non-nil observer in order
func Fanout(obs ...Observer) Observer {
	out := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return Nop()
	case 1:
		return out[0]
	}
	return fanout(out)
}

type fanout []Observer

func (f fanout) Observe(ctx context.Context, d Diagnostic) {
	for _, o := range f {
		o.Observe(ctx, d)
	}
}

// Option configures a strategy
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver injects the diagnostics observer, nil means Nop
func WithObserver(o Observer) Option {
	return func(c *options) {
		if o != nil {
			c.observer = o
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{observer: Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
