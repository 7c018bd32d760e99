// Package http provides http transport for diagnostics
package http

import (
	stdhttp "net/http"

	"socialnorm/internal/modkit/httpkit"
	"socialnorm/internal/platform/net/http/bind"
	"socialnorm/internal/services/diagnostics/domain"
)

// Register mounts diagnostics endpoints on the given router
func Register(r httpkit.Router, reader domain.EventReader) {
	h := &handlers{reader: reader}

	// busiest subreddits or queries from stored events
	httpkit.Get(r, "/top", h.top)
}

type handlers struct{ reader domain.EventReader }

// swagger:route GET /diagnostics/top Diagnostics diagnosticsTop
// @Summary Busiest subreddits or queries from stored diagnostics
// @Tags Diagnostics
// @Produce json
// @Param platform query string false "bluesky or reddit"
// @Param by query string false "subreddit or query"
// @Param hours query int false "look back window in hours"
// @Param limit query int false "max rows"
// @Success 200 {array} domain.TopRow "ok"
// @Failure 503 {object} ErrorResponse "storage not configured"
// @Router /diagnostics/top [get]
func (h *handlers) top(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseQuery[domain.TopInput](r)
	if err != nil {
		return nil, err
	}
	return h.reader.Top(r.Context(), in)
}
