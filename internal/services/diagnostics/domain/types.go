// Package domain holds diagnostics DTOs and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is one successful normalization as stored in clickhouse
type Event struct {
	ID        uuid.UUID
	At        time.Time
	RequestID string
	Platform  string
	Type      string
	Subreddit string
	Query     string
	Count     int
}

// TallyRow is one grouping key of the in-process tally
type TallyRow struct {
	Platform  string `json:"platform" example:"reddit"`
	Type      string `json:"type" example:"post"`
	Subreddit string `json:"subreddit,omitempty" example:"melbourne"`
	Query     string `json:"query,omitempty" example:"housing"`
	Count     int64  `json:"count" example:"12"`
}

// Snapshot is the tally as served by the stats endpoint
type Snapshot struct {
	Total      int64            `json:"total" example:"40"`
	ByPlatform map[string]int64 `json:"by_platform"`
	ByType     map[string]int64 `json:"by_type"`
	Failed     map[string]int64 `json:"failed"`
	Rows       []TallyRow       `json:"rows"`
	Since      string           `json:"since" example:"2026-10-19T08:00:00Z"`
}

// StatsFilter narrows a snapshot, Platform is validated by the platform tag
type StatsFilter struct {
	Platform string `query:"platform" validate:"omitempty,platform"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// TopInput selects the busiest subreddits or queries from stored events
type TopInput struct {
	Platform string `query:"platform" validate:"omitempty,platform"`
	By       string `query:"by" validate:"omitempty,oneof=subreddit query"`
	Hours    int    `query:"hours" validate:"omitempty,min=1,max=720"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// TopRow is one aggregated key from stored events
type TopRow struct {
	Platform string `json:"platform" example:"reddit"`
	Key      string `json:"key" example:"melbourne"`
	Count    uint64 `json:"count" example:"128"`
}
