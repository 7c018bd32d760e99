package domain

import "context"

// EventWriter persists batches of events
type EventWriter interface {
	WriteEvents(ctx context.Context, xs []Event) error
}

// EventReader aggregates stored events
type EventReader interface {
	Top(ctx context.Context, in TopInput) ([]TopRow, error)
}

// StatsPort serves the in-process tally
type StatsPort interface {
	Snapshot(f StatsFilter) Snapshot
}

// FailureRecorder counts failed normalizations by platform and error code
type FailureRecorder interface {
	Failed(ctx context.Context, platform string, err error)
}

// EventStore is the full storage surface the sink and top query need
type EventStore interface {
	EventWriter
	EventReader
}
