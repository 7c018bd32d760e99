package normalize

import (
	"context"

	"socialnorm/internal/core/canonical"
)

// Dispatcher picks a strategy by platform, one lookup per call and nothing else
// The map is written once in NewDispatcher and only read afterwards
type Dispatcher struct {
	byPlatform map[canonical.Platform]Normalizer
	order      []canonical.Platform
}

// NewDispatcher registers the given strategies, a later strategy for the same
// platform replaces an earlier one
func NewDispatcher(ns ...Normalizer) *Dispatcher {
	d := &Dispatcher{byPlatform: make(map[canonical.Platform]Normalizer, len(ns))}
	for _, n := range ns {
		if n == nil {
			continue
		}
		p := n.Platform()
		if _, seen := d.byPlatform[p]; !seen {
			d.order = append(d.order, p)
		}
		d.byPlatform[p] = n
	}
	return d
}

// Default wires both built-in strategies to the same observer
func Default(obs Observer) *Dispatcher {
	return NewDispatcher(
		NewBluesky(WithObserver(obs)),
		NewReddit(WithObserver(obs)),
	)
}

// For returns the strategy registered for p
func (d *Dispatcher) For(p canonical.Platform) (Normalizer, bool) {
	n, ok := d.byPlatform[p]
	return n, ok
}

// Platforms lists registered platforms in registration order
func (d *Dispatcher) Platforms() []canonical.Platform {
	return append([]canonical.Platform(nil), d.order...)
}

// Normalize routes raw to the strategy named by platform
func (d *Dispatcher) Normalize(ctx context.Context, platform string, raw []byte) (canonical.Document, error) {
	p, ok := canonical.ParsePlatform(platform)
	if !ok {
		return canonical.Document{}, canonical.UnknownPlatform(platform)
	}
	n, ok := d.byPlatform[p]
	if !ok {
		return canonical.Document{}, canonical.UnknownPlatform(platform)
	}
	return n.Normalize(ctx, raw)
}
