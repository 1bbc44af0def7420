package handler

import (
	"strings"

	"wmoracle/internal/watermark"
	dErrors "wmoracle/pkg/domain-errors"
)

// VerifyRequest is the HTTP request body for POST /verify.
type VerifyRequest struct {
	Aid          string     `json:"aid"`
	SchemeID     string     `json:"scheme_id"`
	EvidenceHash string     `json:"evidence_hash"`
	WmProfile    *WmProfile `json:"wm_profile"`
}

// WmProfile is the wire form of the acceptance thresholds. Pointer fields
// distinguish an absent threshold from a legitimate zero.
type WmProfile struct {
	TauInput      *float64 `json:"tau_input"`
	TauFeat       *float64 `json:"tau_feat"`
	LogitBandLow  *float64 `json:"logit_band_low"`
	LogitBandHigh *float64 `json:"logit_band_high"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Aid = strings.TrimSpace(r.Aid)
	if r.Aid == "" {
		return dErrors.New(dErrors.CodeBadRequest, "aid is required")
	}
	r.SchemeID = strings.TrimSpace(r.SchemeID)
	if r.SchemeID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "scheme_id is required")
	}
	r.EvidenceHash = strings.TrimSpace(r.EvidenceHash)
	if r.EvidenceHash == "" {
		return dErrors.New(dErrors.CodeBadRequest, "evidence_hash is required")
	}

	if r.WmProfile == nil {
		return dErrors.New(dErrors.CodeBadRequest, "wm_profile is required")
	}
	if r.WmProfile.TauInput == nil {
		return dErrors.New(dErrors.CodeBadRequest, "wm_profile.tau_input is required")
	}
	if r.WmProfile.TauFeat == nil {
		return dErrors.New(dErrors.CodeBadRequest, "wm_profile.tau_feat is required")
	}
	if r.WmProfile.LogitBandLow == nil {
		return dErrors.New(dErrors.CodeBadRequest, "wm_profile.logit_band_low is required")
	}
	if r.WmProfile.LogitBandHigh == nil {
		return dErrors.New(dErrors.CodeBadRequest, "wm_profile.logit_band_high is required")
	}

	return nil
}

// Profile returns the validated thresholds as a domain profile.
func (r *VerifyRequest) Profile() watermark.Profile {
	return watermark.Profile{
		TauInput:      *r.WmProfile.TauInput,
		TauFeat:       *r.WmProfile.TauFeat,
		LogitBandLow:  *r.WmProfile.LogitBandLow,
		LogitBandHigh: *r.WmProfile.LogitBandHigh,
	}
}
