package httpkit

import (
	"net/http"
	"time"

	"socialnorm/internal/platform/config"
	"socialnorm/internal/platform/net/middleware"
)

// StackOptions tunes the per scope stack
type StackOptions struct {
	CORS        middleware.CORSOptions
	MaxInflated int64

	// Throttle caps in-flight requests for the scope, 0 disables
	Throttle        int
	ThrottleBacklog int
	ThrottleWait    time.Duration
}

// StackFromConfig reads CORS_ORIGINS, MAX_INFLATED_BYTES and THROTTLE_* under cfg
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			MaxAge:         cfg.MayInt("CORS_MAX_AGE", 300),
		},
		MaxInflated:     int64(cfg.MayInt("MAX_INFLATED_BYTES", int(middleware.DefaultMaxInflated))),
		Throttle:        cfg.MayInt("THROTTLE_LIMIT", 0),
		ThrottleBacklog: cfg.MayInt("THROTTLE_BACKLOG", 0),
		ThrottleWait:    cfg.MayDuration("THROTTLE_WAIT", 5*time.Second),
	}
}

// CommonStack returns the per scope middleware for versioned API routes
// request id, recovery and access logging sit on the root mux (see middleware.Defaults)
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.CORS(o.CORS),
	}
	if o.Throttle > 0 {
		stack = append(stack, middleware.Throttle(o.Throttle, o.ThrottleBacklog, o.ThrottleWait))
	}
	// bodies are inflated last so throttled requests never pay for it
	return append(stack, middleware.Decompress(o.MaxInflated))
}
