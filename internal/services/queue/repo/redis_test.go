package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	perr "socialnorm/internal/platform/errors"
	pnet "socialnorm/internal/platform/net"
	kit "socialnorm/internal/platform/testkit"
	"socialnorm/internal/services/queue/domain"
)

func TestKeys(t *testing.T) {
	_, rdb := kit.Redis(t)
	r := NewRedis(rdb, " sn: ")
	if r.InKey("reddit") != "sn:in:reddit" || r.OutKey("reddit", "post") != "sn:out:reddit:posts" || r.DeadKey() != "sn:dead" {
		t.Fatalf("keys = %s %s %s", r.InKey("reddit"), r.OutKey("reddit", "post"), r.DeadKey())
	}
	if NewRedis(rdb, "").DeadKey() != "socialnorm:dead" {
		t.Fatal("empty prefix should use the default")
	}
	kit.MustPanic(t, func() { NewRedis(nil, "") })
}

func TestEnqueuePopFIFO(t *testing.T) {
	_, rdb := kit.Redis(t)
	r := NewRedis(rdb, "")
	ctx := context.Background()

	for i, p := range []string{`{"n":1}`, `{"n":2}`} {
		res, err := r.Enqueue(ctx, "reddit", []byte(p))
		if err != nil || res.Depth != int64(i+1) || res.Queue != "socialnorm:in:reddit" {
			t.Fatalf("enqueue = %+v %v", res, err)
		}
	}

	job, ok, err := r.Pop(ctx, time.Second, "bluesky", "reddit")
	if err != nil || !ok {
		t.Fatalf("pop = %v %v", ok, err)
	}
	if job.Platform != "reddit" || string(job.Payload) != `{"n":1}` || job.Queue != "socialnorm:in:reddit" {
		t.Fatalf("job = %+v", job)
	}
}

func TestPop_EmptyAndMisuse(t *testing.T) {
	_, rdb := kit.Redis(t)
	r := NewRedis(rdb, "")

	_, ok, err := r.Pop(context.Background(), time.Second, "reddit")
	if err != nil || ok {
		t.Fatalf("empty pop = %v %v", ok, err)
	}
	if _, _, err := r.Pop(context.Background(), time.Second); err == nil {
		t.Fatal("pop without platforms should fail")
	}
}

func TestDeliverDeadDepths(t *testing.T) {
	mr, rdb := kit.Redis(t)
	r := NewRedis(rdb, "")
	ctx := context.Background()

	if err := r.Deliver(ctx, "bluesky", "comment", []byte(`{"id":"c"}`)); err != nil {
		t.Fatal(err)
	}
	dl := domain.DeadLetter{ID: "x", Platform: "reddit", Error: pnet.Wire{StatusCode: 400, Error: "Invalid JSON"}, RawPayload: "nope"}
	if err := r.Dead(ctx, dl); err != nil {
		t.Fatal(err)
	}
	_, _ = r.Enqueue(ctx, "reddit", []byte(`{}`))

	got, err := mr.List("socialnorm:dead")
	if err != nil || len(got) != 1 {
		t.Fatalf("dead list = %v %v", got, err)
	}
	var back domain.DeadLetter
	if err := json.Unmarshal([]byte(got[0]), &back); err != nil || back.Error.Error != "Invalid JSON" || back.RawPayload != "nope" {
		t.Fatalf("dead letter = %+v %v", back, err)
	}

	st, err := r.Depths(ctx, []string{"bluesky", "reddit"})
	if err != nil {
		t.Fatal(err)
	}
	if st.In["reddit"] != 1 || st.In["bluesky"] != 0 || st.Out["bluesky:comments"] != 1 || st.Out["reddit:posts"] != 0 || st.Dead != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestStoreErrors(t *testing.T) {
	mr, rdb := kit.Redis(t)
	r := NewRedis(rdb, "")
	mr.Close()

	_, err := r.Enqueue(context.Background(), "reddit", []byte(`{}`))
	if perr.CodeOf(err) != perr.ErrorCodeStore {
		t.Fatalf("enqueue err = %v", err)
	}
	if _, _, err := r.Pop(context.Background(), time.Second, "reddit"); perr.CodeOf(err) != perr.ErrorCodeStore {
		t.Fatalf("pop err = %v", err)
	}
	if _, err := r.Depths(context.Background(), []string{"reddit"}); perr.CodeOf(err) != perr.ErrorCodeStore {
		t.Fatalf("depths err = %v", err)
	}
}
