package domain

import (
	"context"
	"time"
)

// Queue is the list storage behind the worker
type Queue interface {
	Enqueue(ctx context.Context, platform string, payload []byte) (EnqueueResult, error)
	// Pop blocks up to timeout; ok is false when nothing arrived
	Pop(ctx context.Context, timeout time.Duration, platforms ...string) (job Job, ok bool, err error)
	Deliver(ctx context.Context, platform, docType string, doc []byte) error
	Dead(ctx context.Context, dl DeadLetter) error
	Depths(ctx context.Context, platforms []string) (Stats, error)
}

// EnqueuePort is consumed by handlers
type EnqueuePort interface {
	Enqueue(ctx context.Context, platform string, payload []byte) (EnqueueResult, error)
	Stats(ctx context.Context) (Stats, error)
}

// WorkerPort runs the pop, normalize, push loop until ctx ends
type WorkerPort interface {
	Run(ctx context.Context) error
}
