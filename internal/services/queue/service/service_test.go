package service

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"testing"
	"time"

	"socialnorm/internal/core/canonical"
	"socialnorm/internal/core/normalize"
	perr "socialnorm/internal/platform/errors"
	kit "socialnorm/internal/platform/testkit"
	normsvc "socialnorm/internal/services/normalizer/service"
	"socialnorm/internal/services/queue/domain"
	"socialnorm/internal/services/queue/repo"
)

func newSvc(t *testing.T, workers int) (*Svc, *repo.Redis, func(key string) []string) {
	t.Helper()
	mr, rdb := kit.Redis(t)
	q := repo.NewRedis(rdb, "t")
	norm := normsvc.New(normalize.Default(nil), nil)
	s := New(q, norm, Config{Workers: workers, PopTimeout: time.Second, Backoff: 10 * time.Millisecond})
	list := func(key string) []string {
		xs, _ := mr.List(key)
		return xs
	}
	return s, q, list
}

func TestEnqueue_Checks(t *testing.T) {
	s, _, list := newSvc(t, 1)
	ctx := context.Background()

	if _, err := s.Enqueue(ctx, "vine", []byte(`{}`)); !stderrs.Is(err, canonical.ErrUnknownPlatform) {
		t.Fatalf("unknown platform err = %v", err)
	}
	if _, err := s.Enqueue(ctx, "reddit", []byte(`{"type":`)); !stderrs.Is(err, canonical.ErrMalformedInput) {
		t.Fatalf("malformed err = %v", err)
	}
	res, err := s.Enqueue(ctx, " reddit ", []byte(`{"type":"post"}`))
	if err != nil || res.Queue != "t:in:reddit" || res.Depth != 1 {
		t.Fatalf("enqueue = %+v %v", res, err)
	}
	if got := list("t:in:reddit"); len(got) != 1 {
		t.Fatalf("in list = %v", got)
	}
}

func TestRun_DeliversAndDeadLetters(t *testing.T) {
	s, _, list := newSvc(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records := map[string]string{
		`{"type":"post","data":{"id":"p1","title":"t"}}`:                  "reddit",
		`{"type":"comment","data":{"id":"c1","post_id":"p1","body":"b"}}`: "reddit",
		`{"type":"repost","cid":"x"}`:                                     "bluesky",
		`{"type":"comment","cid":"bc","record":{"text":"hey"}}`:           "bluesky",
	}
	for body, p := range records {
		if _, err := s.Enqueue(ctx, p, []byte(body)); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for s.Processed()+s.Failed() < 4 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out: processed=%d failed=%d", s.Processed(), s.Failed())
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if !stderrs.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}

	if s.Processed() != 3 || s.Failed() != 1 {
		t.Fatalf("processed=%d failed=%d", s.Processed(), s.Failed())
	}
	posts := list("t:out:reddit:posts")
	if len(posts) != 1 {
		t.Fatalf("reddit posts = %v", posts)
	}
	var doc canonical.Document
	if err := json.Unmarshal([]byte(posts[0]), &doc); err != nil || doc.ID != "reddit_post_p1" {
		t.Fatalf("doc = %+v %v", doc, err)
	}
	if len(list("t:out:reddit:comments")) != 1 || len(list("t:out:bluesky:comments")) != 1 {
		t.Fatal("comments not delivered")
	}

	dead := list("t:dead")
	if len(dead) != 1 {
		t.Fatalf("dead = %v", dead)
	}
	var dl domain.DeadLetter
	if err := json.Unmarshal([]byte(dead[0]), &dl); err != nil {
		t.Fatal(err)
	}
	if dl.Platform != "bluesky" || dl.Error.Error != "Unsupported type" || dl.Error.StatusCode != 400 ||
		string(dl.Payload) != `{"type":"repost","cid":"x"}` || dl.ID == "" || dl.Queue != "t:in:bluesky" {
		t.Fatalf("dead letter = %+v", dl)
	}
}

func TestHandle_InvalidPayloadKeptAsText(t *testing.T) {
	s, _, list := newSvc(t, 1)
	s.handle(context.Background(), domain.Job{Platform: "reddit", Queue: "t:in:reddit", Payload: []byte("garbage")})

	dead := list("t:dead")
	var dl domain.DeadLetter
	if len(dead) != 1 || json.Unmarshal([]byte(dead[0]), &dl) != nil {
		t.Fatalf("dead = %v", dead)
	}
	if dl.RawPayload != "garbage" || dl.Payload != nil || dl.Error.Error != "Invalid JSON" {
		t.Fatalf("dead letter = %+v", dl)
	}
}

func TestRun_RequiresNormalizer(t *testing.T) {
	_, rdb := kit.Redis(t)
	s := New(repo.NewRedis(rdb, ""), nil, Config{})
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error without a normalizer")
	}
	if len(s.cfg.Platforms) != 2 || s.cfg.Workers != 1 {
		t.Fatalf("defaults = %+v", s.cfg)
	}
}

func TestStats(t *testing.T) {
	s, _, _ := newSvc(t, 1)
	_, _ = s.Enqueue(context.Background(), "bluesky", []byte(`{}`))
	st, err := s.Stats(context.Background())
	if err != nil || st.In["bluesky"] != 1 || st.In["reddit"] != 0 {
		t.Fatalf("stats = %+v %v", st, err)
	}
}

// flakyQueue fails Deliver with deliverErr and records what came back to it
type flakyQueue struct {
	domain.Queue
	deliverErr error
	requeued   [][]byte
	dead       []domain.DeadLetter
}

func (f *flakyQueue) Deliver(context.Context, string, string, []byte) error { return f.deliverErr }

func (f *flakyQueue) Enqueue(_ context.Context, _ string, payload []byte) (domain.EnqueueResult, error) {
	f.requeued = append(f.requeued, payload)
	return domain.EnqueueResult{Depth: int64(len(f.requeued))}, nil
}

func (f *flakyQueue) Dead(_ context.Context, dl domain.DeadLetter) error {
	f.dead = append(f.dead, dl)
	return nil
}

func TestHandle_DeliverFailures(t *testing.T) {
	norm := normsvc.New(normalize.Default(nil), nil)
	job := domain.Job{Platform: "reddit", Queue: "t:in:reddit", Payload: []byte(`{"type":"post","data":{"id":"1"}}`)}

	transient := &flakyQueue{deliverErr: perr.Storef(stderrs.New("conn reset"), "lpush")}
	New(transient, norm, Config{}).handle(context.Background(), job)
	if len(transient.requeued) != 1 || len(transient.dead) != 0 {
		t.Fatalf("transient: requeued=%d dead=%d", len(transient.requeued), len(transient.dead))
	}

	permanent := &flakyQueue{deliverErr: perr.Internalf("bad doc")}
	s := New(permanent, norm, Config{})
	s.handle(context.Background(), job)
	if len(permanent.requeued) != 0 || len(permanent.dead) != 1 || s.Failed() != 1 {
		t.Fatalf("permanent: requeued=%d dead=%d", len(permanent.requeued), len(permanent.dead))
	}
}

func TestHandle_FinishesPoppedRecordAfterCancel(t *testing.T) {
	s, q, list := newSvc(t, 1)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := s.Enqueue(ctx, "reddit", []byte(`{"type":"post","data":{"id":"9","title":"t"}}`)); err != nil {
		t.Fatal(err)
	}
	job, ok, err := q.Pop(ctx, time.Second, "reddit")
	if err != nil || !ok {
		t.Fatalf("pop = %v %v", ok, err)
	}
	cancel()
	s.handle(ctx, job)

	if out := list("t:out:reddit:posts"); len(out) != 1 {
		t.Fatalf("out = %v, in = %v, dead = %v", out, list("t:in:reddit"), list("t:dead"))
	}
	if s.Processed() != 1 || s.Failed() != 0 {
		t.Fatalf("processed=%d failed=%d", s.Processed(), s.Failed())
	}
}
