// Package audit captures the verification trail: one event per /verify call,
// buffered in-process and drained by a worker into a store, optionally fanned
// out to Kafka for downstream consumers (compliance replay, dashboards).
//
// The trail is strictly ancillary: a full buffer drops the event rather than
// blocking or failing the verification path.
package audit

import (
	"time"
)

// Outcome classifies how a verification concluded.
type Outcome string

const (
	// OutcomeAccepted means the artifact loaded and passed the decision policy.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeRejected means the artifact loaded but failed the policy.
	OutcomeRejected Outcome = "rejected"
	// OutcomeLoadFailed means the artifact could not be loaded. On the wire
	// this is indistinguishable from rejected; the audit trail keeps the
	// distinction for operators.
	OutcomeLoadFailed Outcome = "load_failed"
)

// Event is emitted from the verification service to capture one verdict.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"ts"`
	Aid          string    `json:"aid"`
	SchemeID     string    `json:"scheme_id"`
	EvidenceHash string    `json:"evidence_hash"`
	Outcome      Outcome   `json:"outcome"`
	Ok           bool      `json:"ok"`
	TriggerAcc   float64   `json:"trigger_acc"`
	FeatDist     float64   `json:"feat_dist"`
	LogitStat    float64   `json:"logit_stat"`
	LatencyMS    int64     `json:"latency_ms"`

	// Correlation and caller metadata from the HTTP layer.
	RequestID  string `json:"request_id,omitempty"`
	ClientIP   string `json:"client_ip,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}
