// Package domain holds queue DTOs and ports
package domain

import (
	"encoding/json"
	"time"

	pnet "socialnorm/internal/platform/net"
)

// Job is one raw record popped from an input list
type Job struct {
	Platform string
	Queue    string
	Payload  []byte
}

// DeadLetter is what lands on the dead list for a record that failed to normalize
// Payload holds the original record when it is valid JSON, RawPayload otherwise
type DeadLetter struct {
	ID         string          `json:"id"`
	Platform   string          `json:"platform"`
	Queue      string          `json:"queue"`
	Error      pnet.Wire       `json:"error"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	RawPayload string          `json:"raw_payload,omitempty"`
	FailedAt   time.Time       `json:"failed_at"`
}

// EnqueueResult reports where a record went and the list length after the push
type EnqueueResult struct {
	Queue string `json:"queue" example:"socialnorm:in:reddit"`
	Depth int64  `json:"depth" example:"12"`
}

// Stats are current list lengths keyed by list name
type Stats struct {
	In   map[string]int64 `json:"in"`
	Out  map[string]int64 `json:"out"`
	Dead int64            `json:"dead" example:"0"`
}
