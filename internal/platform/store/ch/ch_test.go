package ch

import (
	"context"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	opts, err := Options(Config{
		URL:          "clickhouse://user:pw@localhost:9000/social",
		ClientName:   "socialnorm",
		ClientTag:    "worker",
		DialTimeout:  2 * time.Second,
		MaxOpenConns: 7,
	})
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Auth.Database != "social" || opts.Auth.Username != "user" {
		t.Fatalf("auth = %+v", opts.Auth)
	}
	if opts.DialTimeout != 2*time.Second || opts.MaxOpenConns != 7 {
		t.Fatalf("tuning not applied: %v %d", opts.DialTimeout, opts.MaxOpenConns)
	}
	if len(opts.ClientInfo.Products) == 0 || opts.ClientInfo.Products[0].Name != "socialnorm" {
		t.Fatalf("client info = %+v", opts.ClientInfo)
	}
}

func TestOptions_Errors(t *testing.T) {
	if _, err := Options(Config{}); err == nil {
		t.Fatal("empty url should fail")
	}
	if _, err := Open(context.Background(), Config{URL: "clickhouse://bad host:-1/x"}); err == nil {
		t.Fatal("bad dsn should fail")
	}
}

func TestBuildClientInfo(t *testing.T) {
	ci := BuildClientInfo("  ", " api ")
	if ci.Products[0].Name != "socialnorm" {
		t.Fatalf("default name = %q", ci.Products[0].Name)
	}
	if ci.Products[1].Name != "role" || ci.Products[1].Version != "api" {
		t.Fatalf("role = %+v", ci.Products[1])
	}
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	var c CH
	if err := c.Insert(context.Background(), "events", nil); err != nil {
		t.Fatalf("empty insert: %v", err)
	}
}
