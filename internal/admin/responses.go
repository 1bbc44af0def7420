package admin

import (
	"wmoracle/pkg/platform/audit"
)

// EventsResponse wraps the audit trail slice for HTTP responses.
type EventsResponse struct {
	Events []audit.Event `json:"events"`
	Total  int           `json:"total"`

	// Dropped reports verification events discarded because the audit buffer
	// was full. Nonzero means the trail has gaps.
	Dropped int64 `json:"dropped"`
}
