// Package service runs the normalization core for every transport
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"socialnorm/internal/core/canonical"
	"socialnorm/internal/core/normalize"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/platform/logger"
	pnet "socialnorm/internal/platform/net"
	"socialnorm/internal/services/normalizer/domain"

	"golang.org/x/sync/errgroup"
)

// batchParallel bounds the records of one batch normalized at once
const batchParallel = 8

// Svc implements domain.ServicePort over a dispatcher
type Svc struct {
	d        *normalize.Dispatcher
	failures domain.Failures
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the service; failures may be nil
func New(d *normalize.Dispatcher, failures domain.Failures) *Svc {
	if d == nil {
		panic("normalizer.Service requires a non nil Dispatcher")
	}
	return &Svc{d: d, failures: failures}
}

// Normalize tags ctx for logging, runs the dispatcher and reports failures
func (s *Svc) Normalize(ctx context.Context, platform string, raw []byte) (canonical.Document, error) {
	ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), platform)
	doc, err := s.d.Normalize(ctx, platform, raw)
	if err != nil {
		if s.failures != nil {
			s.failures.Failed(ctx, platform, err)
		}
		return canonical.Document{}, err
	}
	return doc, nil
}

// Invoke is the function shaped boundary: 200 with the indented document, or the
// error envelope with its mapped status
func (s *Svc) Invoke(ctx context.Context, platform string, body []byte) domain.Result {
	doc, err := s.Normalize(ctx, platform, body)
	if err != nil {
		return errorResult(ctx, err)
	}
	out, err := doc.Encode()
	if err != nil {
		return errorResult(ctx, perr.Wrap(err, perr.ErrorCodeUnknown, "encode document"))
	}
	return domain.Result{Status: http.StatusOK, Header: jsonHeader(), Body: out}
}

// Batch normalizes each record independently; an unknown platform fails the whole call
func (s *Svc) Batch(ctx context.Context, platform string, records []json.RawMessage) (domain.BatchResponse, error) {
	p, ok := canonical.ParsePlatform(platform)
	if !ok {
		return domain.BatchResponse{}, canonical.UnknownPlatform(platform)
	}
	if _, ok := s.d.For(p); !ok {
		return domain.BatchResponse{}, canonical.UnknownPlatform(platform)
	}
	if len(records) > domain.MaxBatch {
		return domain.BatchResponse{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "records must contain at most %d items", domain.MaxBatch), "records")
	}

	reqID := pnet.RequestID(ctx)
	resp := domain.BatchResponse{Results: make([]domain.BatchItem, len(records))}

	var g errgroup.Group
	g.SetLimit(batchParallel)
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := s.Normalize(ctx, platform, rec)
			if err != nil {
				status, w := pnet.Error(err, reqID)
				resp.Results[i] = domain.BatchItem{Index: i, Status: status, Error: &w}
				return nil
			}
			resp.Results[i] = domain.BatchItem{Index: i, Status: http.StatusOK, Document: &doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.BatchResponse{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled")
	}
	for _, it := range resp.Results {
		if it.Error != nil {
			resp.Failed++
		} else {
			resp.OK++
		}
	}
	return resp, nil
}

func jsonHeader() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return h
}

// errorResult renders err as the shared envelope
func errorResult(ctx context.Context, err error) domain.Result {
	status, w := pnet.Error(err, pnet.RequestID(ctx))
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(w)
	return domain.Result{Status: status, Header: jsonHeader(), Body: bytes.TrimRight(buf.Bytes(), "\n")}
}
