package watermark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// baseline stats and profile satisfy all three factors; each subtest flips
// exactly one inequality and expects the verdict to flip with it.
func TestDecideConjunction(t *testing.T) {
	stats := Stats{TriggerAcc: 0.9, FeatDist: 0.1, LogitStat: 0.0}
	profile := Profile{TauInput: 0.85, TauFeat: 0.15, LogitBandLow: -0.05, LogitBandHigh: 0.05}

	assert.True(t, Decide(stats, profile))

	t.Run("trigger accuracy below tau_input rejects", func(t *testing.T) {
		p := profile
		p.TauInput = 0.95
		assert.False(t, Decide(stats, p))
	})

	t.Run("feature distance above tau_feat rejects", func(t *testing.T) {
		p := profile
		p.TauFeat = 0.05
		assert.False(t, Decide(stats, p))
	})

	t.Run("logit stat below band rejects", func(t *testing.T) {
		p := profile
		p.LogitBandLow = 0.01
		assert.False(t, Decide(stats, p))
	})

	t.Run("logit stat above band rejects", func(t *testing.T) {
		p := profile
		p.LogitBandHigh = -0.01
		assert.False(t, Decide(stats, p))
	})
}

func TestDecideBoundariesInclusive(t *testing.T) {
	stats := Stats{TriggerAcc: 0.85, FeatDist: 0.15, LogitStat: 0.05}
	profile := Profile{TauInput: 0.85, TauFeat: 0.15, LogitBandLow: 0.05, LogitBandHigh: 0.05}

	assert.True(t, Decide(stats, profile))
}

func TestDecideInvertedBandAlwaysRejects(t *testing.T) {
	profile := Profile{TauInput: 0.0, TauFeat: 1.0, LogitBandLow: 1.0, LogitBandHigh: -1.0}

	for _, logit := range []float64{-1.5, -0.05, 0.0, 0.05, 1.5} {
		stats := Stats{TriggerAcc: 1.0, FeatDist: 0.0, LogitStat: logit}
		assert.False(t, Decide(stats, profile), "logit %v", logit)
	}
}
