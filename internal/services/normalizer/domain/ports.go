package domain

import (
	"context"
	"encoding/json"

	"socialnorm/internal/core/canonical"
)

// Normalizer is the typed entry point used by the worker and the cli
type Normalizer interface {
	Normalize(ctx context.Context, platform string, raw []byte) (canonical.Document, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Normalizer
	Invoke(ctx context.Context, platform string, body []byte) Result
	Batch(ctx context.Context, platform string, records []json.RawMessage) (BatchResponse, error)
}

// Failures receives every failed normalization, the diagnostics module implements it
type Failures interface {
	Failed(ctx context.Context, platform string, err error)
}
