package service

import (
	"context"
	"sync"
	"time"

	"socialnorm/internal/core/normalize"
	"socialnorm/internal/platform/logger"
	pnet "socialnorm/internal/platform/net"
	"socialnorm/internal/services/diagnostics/domain"

	"github.com/google/uuid"
)

// SinkConfig tunes the event batcher
type SinkConfig struct {
	Buffer       int           // channel capacity, default 4096
	BatchSize    int           // flush when this many are pending, default 500
	FlushEvery   time.Duration // flush at least this often, default 2s
	FlushTimeout time.Duration // per write, default 10s

	// OnDrop is called when the buffer is full and an event is discarded
	OnDrop func()
}

// Sink batches diagnostics into an EventWriter from its own goroutine
// Observe never blocks; when the buffer is full the event is dropped
type Sink struct {
	w    domain.EventWriter
	cfg  SinkConfig
	in   chan domain.Event
	stop chan struct{}
	done chan struct{}
	once sync.Once
	now  func() time.Time
}

var _ normalize.Observer = (*Sink)(nil)

// NewSink starts the flush loop; stop it with Close
func NewSink(w domain.EventWriter, cfg SinkConfig) *Sink {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 4096
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 10 * time.Second
	}
	s := &Sink{
		w:    w,
		cfg:  cfg,
		in:   make(chan domain.Event, cfg.Buffer),
		stop: make(chan struct{}),
		done: make(chan struct{}),
		now:  time.Now,
	}
	go s.loop()
	return s
}

// Observe implements normalize.Observer
func (s *Sink) Observe(ctx context.Context, d normalize.Diagnostic) {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	e := domain.Event{
		ID:        id,
		At:        s.now().UTC(),
		RequestID: pnet.RequestID(ctx),
		Platform:  string(d.Platform),
		Type:      string(d.Type),
		Subreddit: d.Subreddit,
		Query:     d.Query,
		Count:     d.Count,
	}
	// checked alone: a combined select may still pick the send after Close
	select {
	case <-s.stop:
		s.drop()
		return
	default:
	}
	select {
	case s.in <- e:
	default:
		s.drop()
	}
}

func (s *Sink) drop() {
	if s.cfg.OnDrop != nil {
		s.cfg.OnDrop()
	}
}

func (s *Sink) loop() {
	defer close(s.done)
	log := logger.Named("diagnostics-sink")
	t := time.NewTicker(s.cfg.FlushEvery)
	defer t.Stop()

	buf := make([]domain.Event, 0, s.cfg.BatchSize)
	flush := func() {
		if len(buf) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FlushTimeout)
		defer cancel()
		if err := s.w.WriteEvents(ctx, buf); err != nil {
			log.Error().Err(err).Int("events", len(buf)).Msg("flush diagnostics failed, batch discarded")
		}
		buf = buf[:0]
	}

	for {
		select {
		case e := <-s.in:
			buf = append(buf, e)
			if len(buf) >= s.cfg.BatchSize {
				flush()
			}
		case <-t.C:
			flush()
		case <-s.stop:
			for {
				select {
				case e := <-s.in:
					buf = append(buf, e)
					if len(buf) >= s.cfg.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close stops accepting events, flushes what is pending and waits for ctx
func (s *Sink) Close(ctx context.Context) error {
	s.once.Do(func() { close(s.stop) })
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
