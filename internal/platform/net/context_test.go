package net_test

import (
	"context"
	"testing"

	pnet "socialnorm/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	cases := []struct {
		name, reqID, platform string
	}{
		{"both", "req-1", "reddit"},
		{"request only", "req-2", ""},
		{"platform only", "", "bluesky"},
		{"none", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, c.reqID, c.platform)
			if got := pnet.RequestID(ctx); got != c.reqID {
				t.Fatalf("RequestID = %q, want %q", got, c.reqID)
			}
			if got := pnet.Platform(ctx); got != c.platform {
				t.Fatalf("Platform = %q, want %q", got, c.platform)
			}
		})
	}

	if pnet.WithRequest(base, "", "") != base {
		t.Fatalf("ctx should be unchanged when nothing is set")
	}
}
