// Package http provides http transport for the queue
package http

import (
	"io"
	stdhttp "net/http"

	"socialnorm/internal/modkit/httpkit"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/platform/net/http/bind"
	"socialnorm/internal/services/queue/domain"
)

// Register mounts the queue routes
func Register(r httpkit.Router, svc domain.EnqueuePort) {
	h := &handlers{svc: svc}

	httpkit.Get(r, "/stats", h.stats)
	httpkit.PostRaw(r, "/{platform}", h.enqueue)
}

type handlers struct{ svc domain.EnqueuePort }

// swagger:route POST /queue/{platform} Queue queueEnqueue
// @Summary Queue one raw record for the worker
// @Tags Queue
// @Accept json
// @Produce json
// @Param platform path string true "bluesky or reddit"
// @Param record body object true "raw platform record"
// @Success 202 {object} domain.EnqueueResult "queued"
// @Failure 404 {object} ErrorResponse "unknown platform"
// @Router /queue/{platform} [post]
func (h *handlers) enqueue(r *stdhttp.Request) httpkit.Response {
	body, err := io.ReadAll(io.LimitReader(r.Body, bind.DefaultMaxBytes))
	if err != nil {
		return httpkit.Error(perr.Wrap(err, perr.ErrorCodeJSON, "Invalid JSON"))
	}
	res, err := h.svc.Enqueue(r.Context(), httpkit.URLParam(r, "platform"), body)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Response{Status: stdhttp.StatusAccepted, Body: res}
}

// swagger:route GET /queue/stats Queue queueStats
// @Summary Current queue list lengths
// @Tags Queue
// @Produce json
// @Success 200 {object} domain.Stats "depths"
// @Router /queue/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}
