// Package http provides http transport for the normalizer
package http

import (
	stderrs "errors"
	"io"
	stdhttp "net/http"

	"socialnorm/internal/modkit/httpkit"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/platform/logger"
	"socialnorm/internal/platform/net/http/bind"
	diagdomain "socialnorm/internal/services/diagnostics/domain"
	"socialnorm/internal/services/normalizer/domain"
)

// Register mounts the normalizer routes; stats may be nil when the tally is not wired
func Register(r httpkit.Router, svc domain.ServicePort, stats diagdomain.StatsPort) {
	h := &handlers{svc: svc, stats: stats, maxBytes: bind.DefaultMaxBytes}

	httpkit.Get(r, "/stats", h.snapshot)
	httpkit.PostRaw(r, "/{platform}", h.normalize)
	httpkit.PostJSON(r, "/{platform}/batch", h.batch)
}

type handlers struct {
	svc      domain.ServicePort
	stats    diagdomain.StatsPort
	maxBytes int64
}

// swagger:route POST /normalize/{platform} Normalize normalizeOne
// @Summary Normalize one raw record into the canonical document
// @Tags Normalize
// @Accept json
// @Produce json
// @Param platform path string true "bluesky or reddit"
// @Param record body object true "raw platform record"
// @Success 200 {object} canonical.Document "canonical document, indented"
// @Failure 400 {object} ErrorResponse "Invalid JSON, Unsupported type or Unknown type"
// @Failure 404 {object} ErrorResponse "unknown platform"
// @Router /normalize/{platform} [post]
func (h *handlers) normalize(r *stdhttp.Request) httpkit.Response {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("close request body")
		}
	}()
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBytes+1))
	if err != nil {
		var mbe *stdhttp.MaxBytesError
		if stderrs.As(err, &mbe) {
			return httpkit.Error(perr.Newf(perr.ErrorCodeInvalidArgument, "body exceeds %d bytes", mbe.Limit))
		}
		return httpkit.Error(perr.Wrap(err, perr.ErrorCodeJSON, "Invalid JSON"))
	}
	if int64(len(body)) > h.maxBytes {
		return httpkit.Error(perr.Newf(perr.ErrorCodeInvalidArgument, "body exceeds %d bytes", h.maxBytes))
	}

	res := h.svc.Invoke(r.Context(), httpkit.URLParam(r, "platform"), body)
	return httpkit.Response{Status: res.Status, Header: res.Header, RawBody: res.Body}
}

// swagger:route POST /normalize/{platform}/batch Normalize normalizeBatch
// @Summary Normalize up to 500 records, each independently
// @Tags Normalize
// @Accept json
// @Produce json
// @Param platform path string true "bluesky or reddit"
// @Param payload body domain.BatchRequest true "records"
// @Success 200 {object} domain.BatchResponse "per record outcomes"
// @Failure 404 {object} ErrorResponse "unknown platform"
// @Router /normalize/{platform}/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchRequest) (any, error) {
	return h.svc.Batch(r.Context(), httpkit.URLParam(r, "platform"), in.Records)
}

// swagger:route GET /normalize/stats Normalize normalizeStats
// @Summary In-process tally of successful and failed normalizations
// @Tags Normalize
// @Produce json
// @Param platform query string false "bluesky or reddit"
// @Param limit query int false "max rows"
// @Success 200 {object} diagdomain.Snapshot "tally"
// @Failure 503 {object} ErrorResponse "tally disabled"
// @Router /normalize/stats [get]
func (h *handlers) snapshot(r *stdhttp.Request) (any, error) {
	if h.stats == nil {
		return nil, perr.Unavailablef("diagnostics tally is not configured")
	}
	f, err := bind.ParseQuery[diagdomain.StatsFilter](r)
	if err != nil {
		return nil, err
	}
	return h.stats.Snapshot(f), nil
}
