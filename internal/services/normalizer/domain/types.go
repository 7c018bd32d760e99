// Package domain holds normalizer DTOs and ports
package domain

import (
	"encoding/json"
	"net/http"

	"socialnorm/internal/core/canonical"
	pnet "socialnorm/internal/platform/net"
)

// MaxBatch caps the records accepted by one batch call
const MaxBatch = 500

// Result is a transport neutral response: the status, headers and the exact body bytes
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// BatchRequest carries raw records for one platform
type BatchRequest struct {
	Records []json.RawMessage `json:"records" validate:"required,min=1,max=500" swaggertype:"array,object"`
}

// BatchItem is the outcome for one record, Document and Error are exclusive
type BatchItem struct {
	Index    int                 `json:"index" example:"0"`
	Status   int                 `json:"status" example:"200"`
	Document *canonical.Document `json:"document,omitempty"`
	Error    *pnet.Wire          `json:"error,omitempty"`
}

// BatchResponse lists per record outcomes in input order
type BatchResponse struct {
	Results []BatchItem `json:"results"`
	OK      int         `json:"ok" example:"2"`
	Failed  int         `json:"failed" example:"0"`
}
