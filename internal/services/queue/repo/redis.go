// Package repo stores queue lists in redis
package repo

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"strings"
	"time"

	"socialnorm/internal/core/canonical"
	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/services/queue/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every list key
const DefaultPrefix = "socialnorm"

// Redis implements domain.Queue with plain lists: producers RPUSH the input list,
// workers BLPOP it, outputs and dead letters are LPUSHed for the indexer
type Redis struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ domain.Queue = (*Redis)(nil)

// NewRedis binds the lists under prefix (empty means DefaultPrefix)
func NewRedis(rdb redis.UniversalClient, prefix string) *Redis {
	if rdb == nil {
		panic("queue.Redis requires a non nil client")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

// InKey is the input list for platform
func (r *Redis) InKey(platform string) string { return r.prefix + ":in:" + platform }

// OutKey is the output list for platform and document type, e.g. socialnorm:out:reddit:posts
func (r *Redis) OutKey(platform, docType string) string {
	return r.prefix + ":out:" + platform + ":" + docType + "s"
}

// DeadKey is the single dead letter list
func (r *Redis) DeadKey() string { return r.prefix + ":dead" }

// Enqueue appends payload to the platform input list
func (r *Redis) Enqueue(ctx context.Context, platform string, payload []byte) (domain.EnqueueResult, error) {
	key := r.InKey(platform)
	n, err := r.rdb.RPush(ctx, key, payload).Result()
	if err != nil {
		return domain.EnqueueResult{}, perr.Storef(err, "enqueue %s", key)
	}
	return domain.EnqueueResult{Queue: key, Depth: n}, nil
}

// Pop takes the oldest record across the platform input lists
func (r *Redis) Pop(ctx context.Context, timeout time.Duration, platforms ...string) (domain.Job, bool, error) {
	if len(platforms) == 0 {
		return domain.Job{}, false, perr.Internalf("pop needs at least one platform")
	}
	byKey := make(map[string]string, len(platforms))
	keys := make([]string, 0, len(platforms))
	for _, p := range platforms {
		k := r.InKey(p)
		byKey[k] = p
		keys = append(keys, k)
	}

	res, err := r.rdb.BLPop(ctx, timeout, keys...).Result()
	switch {
	case stderrs.Is(err, redis.Nil):
		return domain.Job{}, false, nil
	case err != nil:
		return domain.Job{}, false, perr.Storef(err, "blpop %s", strings.Join(keys, ","))
	case len(res) != 2:
		return domain.Job{}, false, perr.Storef(nil, "blpop returned %d values", len(res))
	}
	return domain.Job{Platform: byKey[res[0]], Queue: res[0], Payload: []byte(res[1])}, true, nil
}

// Deliver pushes a normalized document onto its output list
func (r *Redis) Deliver(ctx context.Context, platform, docType string, doc []byte) error {
	key := r.OutKey(platform, docType)
	if err := r.rdb.LPush(ctx, key, doc).Err(); err != nil {
		return perr.Storef(err, "deliver %s", key)
	}
	return nil
}

// Dead pushes a dead letter
func (r *Redis) Dead(ctx context.Context, dl domain.DeadLetter) error {
	b, err := json.Marshal(dl)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode dead letter")
	}
	if err := r.rdb.LPush(ctx, r.DeadKey(), b).Err(); err != nil {
		return perr.Storef(err, "dead letter %s", r.DeadKey())
	}
	return nil
}

// Depths reads every list length in one pipeline
func (r *Redis) Depths(ctx context.Context, platforms []string) (domain.Stats, error) {
	type pending struct {
		in   bool
		name string
		cmd  *redis.IntCmd
	}
	var cmds []pending
	pipe := r.rdb.Pipeline()
	for _, p := range platforms {
		cmds = append(cmds, pending{in: true, name: p, cmd: pipe.LLen(ctx, r.InKey(p))})
		for _, t := range []canonical.Type{canonical.TypePost, canonical.TypeComment} {
			cmds = append(cmds, pending{name: p + ":" + string(t) + "s", cmd: pipe.LLen(ctx, r.OutKey(p, string(t)))})
		}
	}
	dead := pipe.LLen(ctx, r.DeadKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Stats{}, perr.Storef(err, "queue depths")
	}

	out := domain.Stats{In: map[string]int64{}, Out: map[string]int64{}, Dead: dead.Val()}
	for _, c := range cmds {
		if c.in {
			out.In[c.name] = c.cmd.Val()
		} else {
			out.Out[c.name] = c.cmd.Val()
		}
	}
	return out, nil
}
