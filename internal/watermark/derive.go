// Package watermark holds the statistic derivation and the decision policy
// for watermark authenticity checks.
//
// The reference deriver is a placeholder standing in for a real multi-factor
// detector (trigger set, feature space, logit band). It exists so the
// protocol contract is exercisable end to end: deterministic, bounded-range
// statistics derived purely from the claim inputs. A production detector
// replaces BlakeDeriver behind the same Deriver interface without touching
// the orchestrator or the decision policy.
package watermark

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Stats is one set of verification statistics, produced once per call and
// never cached or mutated afterwards.
type Stats struct {
	// TriggerAcc is the trigger-set accuracy, in [0,1].
	TriggerAcc float64
	// FeatDist is the feature-space distance, >= 0.
	FeatDist float64
	// LogitStat is the signed logit-band statistic.
	LogitStat float64
}

// Deriver produces verification statistics for an artifact claim.
// Implementations must be deterministic: identical inputs yield bit-identical
// outputs across calls, replicas, and process restarts, so verdicts are
// reproducible for audit.
type Deriver interface {
	Derive(aid, evidenceHash string) Stats
}

// BlakeDeriver is the reference Deriver. It hashes the concatenated inputs
// with BLAKE2b-128 and maps fixed digest ranges into the target intervals:
//
//	trigger_acc in [0.80, 1.00]
//	feat_dist   in [0.01, 0.21]
//	logit_stat  in [-0.05, 0.05]
type BlakeDeriver struct{}

func NewBlakeDeriver() BlakeDeriver { return BlakeDeriver{} }

func (BlakeDeriver) Derive(aid, evidenceHash string) Stats {
	h, err := blake2b.New(16, nil)
	if err != nil {
		// Only reachable with an invalid size/key, both fixed here.
		panic(err)
	}
	h.Write([]byte(aid + evidenceHash))
	digest := h.Sum(nil)

	return Stats{
		TriggerAcc: 0.8 + 0.2*toUnitInterval(digest[0:5]),
		FeatDist:   0.01 + 0.2*toUnitInterval(digest[5:10]),
		LogitStat:  -0.05 + 0.1*toUnitInterval(digest[10:16]),
	}
}

// toUnitInterval maps up to 8 big-endian bytes onto [0,1] by dividing by the
// range's maximum value.
func toUnitInterval(b []byte) float64 {
	var buf [8]byte
	copy(buf[8-len(b):], b)
	v := binary.BigEndian.Uint64(buf[:])
	max := uint64(1)<<(8*len(b)) - 1
	return float64(v) / float64(max)
}
