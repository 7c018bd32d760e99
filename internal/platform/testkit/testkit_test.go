package testkit

import (
	"context"
	"os"
	"testing"
)

var seam = func() string { return "real" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seam, func() string { return "fake" })
		if seam() != "fake" {
			t.Fatalf("swap did not take effect")
		}
	})
	if seam() != "real" {
		t.Fatalf("swap not restored")
	}
}

func TestEnv(t *testing.T) {
	Env(t, map[string]string{"TESTKIT_A": "1", "TESTKIT_B": "2"})
	if os.Getenv("TESTKIT_A") != "1" || os.Getenv("TESTKIT_B") != "2" {
		t.Fatalf("env not set")
	}
}

func TestMustPanicAndContain(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustContain(t, "alpha beta gamma", "beta")
}

func TestRedis(t *testing.T) {
	mr, rdb := Redis(t)
	if err := rdb.LPush(context.Background(), "k", "v").Err(); err != nil {
		t.Fatalf("lpush: %v", err)
	}
	if got, _ := mr.List("k"); len(got) != 1 || got[0] != "v" {
		t.Fatalf("list = %v", got)
	}
}
