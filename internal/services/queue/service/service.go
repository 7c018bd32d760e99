// Package service contains the enqueue side and the queue worker
package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"socialnorm/internal/core/canonical"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/platform/logger"
	pnet "socialnorm/internal/platform/net"
	normdomain "socialnorm/internal/services/normalizer/domain"
	"socialnorm/internal/services/queue/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config tunes the worker
type Config struct {
	Workers    int
	PopTimeout time.Duration
	Backoff    time.Duration
	// SettleTimeout bounds the writes that finish a popped record, shutdown included
	SettleTimeout time.Duration
	Platforms     []string
}

// Svc implements domain.EnqueuePort and domain.WorkerPort
type Svc struct {
	q    domain.Queue
	norm normdomain.Normalizer
	cfg  Config

	processed atomic.Uint64
	failed    atomic.Uint64
}

var (
	_ domain.EnqueuePort = (*Svc)(nil)
	_ domain.WorkerPort  = (*Svc)(nil)
)

// New constructs the service; norm may be nil for enqueue-only processes
func New(q domain.Queue, norm normdomain.Normalizer, cfg Config) *Svc {
	if q == nil {
		panic("queue.Service requires a non nil Queue")
	}
	cfg.Workers = max(1, cfg.Workers)
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = 2 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = 5 * time.Second
	}
	if len(cfg.Platforms) == 0 {
		for _, p := range canonical.Platforms() {
			cfg.Platforms = append(cfg.Platforms, string(p))
		}
	}
	return &Svc{q: q, norm: norm, cfg: cfg}
}

// Enqueue checks the platform and that payload is JSON, then appends it to the input list
func (s *Svc) Enqueue(ctx context.Context, platform string, payload []byte) (domain.EnqueueResult, error) {
	p, ok := canonical.ParsePlatform(platform)
	if !ok {
		return domain.EnqueueResult{}, canonical.UnknownPlatform(platform)
	}
	if !json.Valid(payload) {
		return domain.EnqueueResult{}, canonical.MalformedInput(nil)
	}
	return s.q.Enqueue(ctx, string(p), payload)
}

// Stats reports the list depths for the configured platforms
func (s *Svc) Stats(ctx context.Context) (domain.Stats, error) {
	return s.q.Depths(ctx, s.cfg.Platforms)
}

// Processed is the count of documents delivered by this process
func (s *Svc) Processed() uint64 { return s.processed.Load() }

// Failed is the count of records dead lettered by this process
func (s *Svc) Failed() uint64 { return s.failed.Load() }

// Run starts cfg.Workers loops that each pop independently and returns once all
// of them have stopped
func (s *Svc) Run(ctx context.Context) error {
	if s.norm == nil {
		return perr.Internalf("queue worker requires a Normalizer")
	}
	log := logger.Named("queue-worker")
	log.Info().Int("workers", s.cfg.Workers).Strs("platforms", s.cfg.Platforms).Msg("worker started")

	var g errgroup.Group
	for i := range s.cfg.Workers {
		g.Go(func() error {
			s.loop(ctx, i)
			return nil
		})
	}
	_ = g.Wait()

	log.Info().Uint64("processed", s.Processed()).Uint64("failed", s.Failed()).Msg("worker stopped")
	return ctx.Err()
}

func (s *Svc) loop(ctx context.Context, id int) {
	log := logger.Named("queue-worker").With().Int("worker", id).Logger()
	for ctx.Err() == nil {
		job, ok, err := s.q.Pop(ctx, s.cfg.PopTimeout, s.cfg.Platforms...)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Dur("backoff", s.cfg.Backoff).Msg("pop failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.Backoff):
			}
			continue
		}
		if ok {
			s.handle(ctx, job)
		}
	}
}

// handle normalizes one job; a transient delivery failure goes back on the input
// list, everything else ends on the dead list
func (s *Svc) handle(ctx context.Context, job domain.Job) {
	// BLPOP already removed the record; cancelling the worker must not drop it
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.SettleTimeout)
	defer cancel()

	reqID := uuid.NewString()
	ctx = pnet.WithRequest(ctx, reqID, job.Platform)

	doc, err := s.norm.Normalize(ctx, job.Platform, job.Payload)
	if err == nil {
		var b []byte
		if b, err = json.Marshal(doc); err == nil {
			err = s.q.Deliver(ctx, job.Platform, string(doc.Type), b)
		}
		if err == nil {
			s.processed.Add(1)
			return
		}
		log := logger.C(logger.WithRequest(ctx, reqID, job.Platform))
		if perr.Retryable(err) {
			if _, rerr := s.q.Enqueue(ctx, job.Platform, job.Payload); rerr == nil {
				log.Warn().Err(err).Msg("deliver failed, record requeued")
				return
			}
		}
		log.Error().Err(err).Msg("deliver failed")
	}

	s.failed.Add(1)
	_, w := pnet.Error(err, reqID)
	dl := domain.DeadLetter{
		ID:       reqID,
		Platform: job.Platform,
		Queue:    job.Queue,
		Error:    w,
		FailedAt: time.Now().UTC(),
	}
	if json.Valid(job.Payload) {
		dl.Payload = json.RawMessage(job.Payload)
	} else {
		dl.RawPayload = string(job.Payload)
	}
	if derr := s.q.Dead(ctx, dl); derr != nil {
		logger.C(logger.WithRequest(ctx, reqID, job.Platform)).Error().Err(derr).Msg("dead letter failed, record dropped")
	}
}
