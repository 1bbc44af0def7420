// Package verify orchestrates one authenticity check: resolve the claimed
// artifact, load it, derive watermark statistics, and apply the caller's
// decision profile. Every step is deterministic given the same inputs and
// store contents, so a verdict can be reproduced for audit.
package verify

import (
	"wmoracle/internal/watermark"
)

// Request carries one verification claim as received from the chain side.
// Aid is used as given for statistic derivation; only path resolution
// normalizes it.
type Request struct {
	Aid          string
	SchemeID     string
	EvidenceHash string
	Profile      watermark.Profile
}

// Result is the outcome of one verification call.
//
// A claim whose artifact cannot be loaded folds into Ok=false with the fixed
// failure statistics rather than an error: callers must not be able to tell a
// missing artifact apart from a rejected one.
type Result struct {
	Ok        bool
	Stats     watermark.Stats
	LatencyMS int64

	// Loaded records whether the artifact was readable. It feeds the audit
	// trail and metrics only and never reaches the wire response.
	Loaded bool
}

// failureStats is returned whenever the artifact cannot be loaded.
var failureStats = watermark.Stats{TriggerAcc: 0.0, FeatDist: 1.0, LogitStat: 0.0}
