package watermark

// Profile carries the caller's acceptance thresholds for the three factors.
// logit band low <= high is assumed, not enforced: an inverted band simply
// makes the decision unsatisfiable, which is a legitimate "always reject"
// profile rather than an error.
type Profile struct {
	TauInput      float64 `json:"tau_input"`
	TauFeat       float64 `json:"tau_feat"`
	LogitBandLow  float64 `json:"logit_band_low"`
	LogitBandHigh float64 `json:"logit_band_high"`
}

// Decide applies the multi-factor policy: a strict conjunction of the three
// per-statistic checks, every comparison inclusive at its boundary. Any
// single failing factor rejects.
func Decide(stats Stats, profile Profile) bool {
	return stats.TriggerAcc >= profile.TauInput &&
		stats.FeatDist <= profile.TauFeat &&
		profile.LogitBandLow <= stats.LogitStat &&
		stats.LogitStat <= profile.LogitBandHigh
}
