package handler

import (
	"wmoracle/internal/verify"
)

// VerifyResponse is the HTTP response for POST /verify. The statistic fields
// are nullable on the wire; this service always populates them, including the
// fixed failure values when the artifact could not be loaded.
type VerifyResponse struct {
	Ok         bool     `json:"ok"`
	TriggerAcc *float64 `json:"trigger_acc"`
	FeatDist   *float64 `json:"feat_dist"`
	LogitStat  *float64 `json:"logit_stat"`
	LatencyMS  *int64   `json:"latency_ms"`
}

// FromResult converts a domain Result to an HTTP response.
func FromResult(result *verify.Result) *VerifyResponse {
	return &VerifyResponse{
		Ok:         result.Ok,
		TriggerAcc: &result.Stats.TriggerAcc,
		FeatDist:   &result.Stats.FeatDist,
		LogitStat:  &result.Stats.LogitStat,
		LatencyMS:  &result.LatencyMS,
	}
}
