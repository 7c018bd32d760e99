package service

import (
	"bytes"
	"context"
	"testing"

	"socialnorm/internal/core/canonical"
	"socialnorm/internal/platform/logger"
	pnet "socialnorm/internal/platform/net"
	kit "socialnorm/internal/platform/testkit"
)

// runs first in this package so Init still takes effect
func TestLog_Lines(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &buf})

	ctx := logger.WithRequest(pnet.WithRequest(context.Background(), "rid-7", "reddit"), "rid-7", "reddit")
	Log{}.Observe(ctx, diag(canonical.PlatformReddit, canonical.TypePost, "melbourne", "housing"))
	Log{}.Failed(ctx, "reddit", canonical.UnknownType("award"))

	out := buf.String()
	if out == "" {
		t.Skip("root logger initialised elsewhere")
	}
	kit.MustContain(t, out, "processed post | query: housing | subreddit: melbourne | returned 1 document")
	kit.MustContain(t, out, `"request_id":"rid-7"`)
	kit.MustContain(t, out, `"reason":"unknown_type"`)
}
