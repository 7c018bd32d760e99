// Package repo stores diagnostics events in clickhouse
package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	perr "socialnorm/internal/platform/errors"
	"socialnorm/internal/platform/store"
	"socialnorm/internal/services/diagnostics/domain"
)

// DefaultTable is used when no table is configured
const DefaultTable = "socialnorm.normalize_events"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// CH is the clickhouse backed events repo
type CH struct {
	ch    store.Clickhouse
	table string
}

var (
	_ domain.EventWriter = (*CH)(nil)
	_ domain.EventReader = (*CH)(nil)
)

// NewCH binds the repo to a table; the name is interpolated into SQL so it must be a plain identifier
func NewCH(ch store.Clickhouse, table string) (*CH, error) {
	if ch == nil {
		return nil, errors.New("diagnostics repo: nil clickhouse")
	}
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("diagnostics repo: bad table name %q", table)
	}
	return &CH{ch: ch, table: table}, nil
}

// Table returns the bound table name
func (r *CH) Table() string { return r.table }

// EnsureSchema creates the events table when missing
func (r *CH) EnsureSchema(ctx context.Context) error {
	return r.ch.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+r.table+` (
			event_id   UUID,
			at         DateTime64(3, 'UTC'),
			request_id String,
			platform   LowCardinality(String),
			type       LowCardinality(String),
			subreddit  String,
			query      String,
			count      UInt32
		)
		ENGINE = MergeTree
		PARTITION BY toYYYYMM(at)
		ORDER BY (platform, at, event_id)`)
}

// WriteEvents inserts xs in one batch
func (r *CH) WriteEvents(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{
			e.ID, e.At.UTC(), e.RequestID, e.Platform, e.Type, e.Subreddit, e.Query, uint32(e.Count),
		})
	}
	if err := r.ch.Insert(ctx, r.table, rows); err != nil {
		return perr.Storef(err, "write %d diagnostics events", len(xs))
	}
	return nil
}

// Top sums counts per subreddit or query over the last Hours
func (r *CH) Top(ctx context.Context, in domain.TopInput) ([]domain.TopRow, error) {
	col := "subreddit"
	if in.By == "query" {
		col = "query"
	}
	hours := in.Hours
	if hours <= 0 {
		hours = 24
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	sql := `
		SELECT platform, ` + col + ` AS key, toUInt64(sum(count)) AS n
		FROM ` + r.table + `
		WHERE at >= ? AND ` + col + ` != ''`
	args := []any{since}
	if in.Platform != "" {
		sql += ` AND platform = ?`
		args = append(args, in.Platform)
	}
	sql += `
		GROUP BY platform, key
		ORDER BY n DESC, key ASC
		LIMIT ?`
	args = append(args, limit)

	rows, err := r.ch.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.Storef(err, "query top %s", col)
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.TopRow, 0, limit)
	for rows.Next() {
		var t domain.TopRow
		if err := rows.Scan(&t.Platform, &t.Key, &t.Count); err != nil {
			return nil, perr.Storef(err, "scan top row")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Storef(err, "iterate top rows")
	}
	return out, nil
}
