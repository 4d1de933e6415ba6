package lookup

import (
	"time"
)

// Lookup is one relayed movie query as recorded in the audit trail.
type Lookup struct {
	ID             string    `json:"id"`
	RequestID      string    `json:"request_id,omitempty"`
	Mode           string    `json:"mode"`
	Term           string    `json:"term"`
	Page           string    `json:"page,omitempty"`
	Outcome        string    `json:"outcome"`
	StatusCode     int       `json:"status_code"`
	UpstreamStatus int       `json:"upstream_status,omitempty"`
	TotalResults   int       `json:"total_results"`
	DurationMS     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
