package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"socialnorm/internal/core/normalize"
	pstrings "socialnorm/internal/platform/strings"
	"socialnorm/internal/services/diagnostics/domain"
)

type tallyKey struct {
	platform, typ, subreddit, query string
}

// Tally counts diagnostics in memory, grouped by folded subreddit and query
type Tally struct {
	mu      sync.Mutex
	since   time.Time
	rows    map[tallyKey]int64
	failed  map[string]int64
	maxKeys int
}

var (
	_ normalize.Observer = (*Tally)(nil)
	_ domain.StatsPort   = (*Tally)(nil)
)

// NewTally caps distinct keys at maxKeys (<=0 means 10000); overflow folds into
// a key with empty subreddit and query
func NewTally(maxKeys int) *Tally {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &Tally{
		since:   time.Now().UTC(),
		rows:    map[tallyKey]int64{},
		failed:  map[string]int64{},
		maxKeys: maxKeys,
	}
}

// Observe implements normalize.Observer
func (t *Tally) Observe(_ context.Context, d normalize.Diagnostic) {
	k := tallyKey{
		platform:  string(d.Platform),
		typ:       string(d.Type),
		subreddit: pstrings.Fold(d.Subreddit),
		query:     pstrings.Fold(d.Query),
	}
	n := int64(d.Count)
	if n <= 0 {
		n = 1
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[k]; !ok && len(t.rows) >= t.maxKeys {
		k.subreddit, k.query = "", ""
	}
	t.rows[k] += n
}

// Failed counts a rejected record under its platform and reason
func (t *Tally) Failed(_ context.Context, platform string, err error) {
	t.mu.Lock()
	t.failed[platform+":"+Reason(err)]++
	t.mu.Unlock()
}

// Snapshot copies the tally; rows are ordered by count desc then key
func (t *Tally) Snapshot(f domain.StatsFilter) domain.Snapshot {
	t.mu.Lock()
	rows := make([]domain.TallyRow, 0, len(t.rows))
	for k, n := range t.rows {
		if f.Platform != "" && k.platform != f.Platform {
			continue
		}
		rows = append(rows, domain.TallyRow{Platform: k.platform, Type: k.typ, Subreddit: k.subreddit, Query: k.query, Count: n})
	}
	failed := make(map[string]int64, len(t.failed))
	for k, n := range t.failed {
		failed[k] = n
	}
	since := t.since
	t.mu.Unlock()

	out := domain.Snapshot{
		ByPlatform: map[string]int64{},
		ByType:     map[string]int64{},
		Failed:     failed,
		Since:      since.Format(time.RFC3339),
	}
	for _, r := range rows {
		out.Total += r.Count
		out.ByPlatform[r.Platform] += r.Count
		out.ByType[r.Type] += r.Count
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Subreddit != b.Subreddit {
			return a.Subreddit < b.Subreddit
		}
		return a.Query < b.Query
	})
	if f.Limit > 0 && len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	out.Rows = rows
	return out
}
