package democtl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var verifyCount int

// demoProfiles mirrors the per-model thresholds the chain side registers
// during a demonstration round. All bands are wide enough to accept the
// reference statistics.
var (
	demoTauInputs  = []float64{0.0, 0.2, -0.1, 0.4, -0.3, 0.6, 0.1, -0.2, 0.5, 0.8}
	demoTauFeats   = []float64{1.0, 0.9, 1.1, 1.2, 0.85, 1.05, 0.95, 1.15, 1.25, 0.75}
	demoLogitLows  = []float64{-1.0, -0.8, -1.2, -0.6, -1.4, -0.5, -1.1, -0.7, -1.3, -0.9}
	demoLogitHighs = []float64{1.0, 1.2, 0.9, 1.3, 0.8, 1.4, 0.95, 1.25, 1.5, 1.1}
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Submit sample verification claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClaims(cmd.Context(), baseURL, verifyCount)
	},
}

func init() {
	verifyCmd.Flags().IntVar(&verifyCount, "count", 10, "number of seeded artifacts to claim")
}

type claim struct {
	label   string
	aid     string
	payload map[string]any
}

func demoClaims(count int) []claim {
	claims := make([]claim, 0, count+2)
	for i := 1; i <= count; i++ {
		p := i - 1
		claims = append(claims, claim{
			label: fmt.Sprintf("model %d/%d", i, count),
			aid:   demoAid(i),
			payload: verifyPayload(demoAid(i), demoEvidence(i),
				demoTauInputs[p%len(demoTauInputs)],
				demoTauFeats[p%len(demoTauFeats)],
				demoLogitLows[p%len(demoLogitLows)],
				demoLogitHighs[p%len(demoLogitHighs)],
			),
		})
	}

	// Two rejection probes: a threshold no statistic can reach, and an
	// inverted band that is unsatisfiable by construction.
	claims = append(claims, claim{
		label:   "strict threshold (expect ok=false)",
		aid:     demoAid(1),
		payload: verifyPayload(demoAid(1), demoEvidence(1), 0.9999999, 1.0, -1.0, 1.0),
	})
	claims = append(claims, claim{
		label:   "inverted band (expect ok=false)",
		aid:     demoAid(1),
		payload: verifyPayload(demoAid(1), demoEvidence(1), 0.0, 1.0, 1.0, -1.0),
	})
	return claims
}

func verifyPayload(aid, evidence string, tauInput, tauFeat, logitLow, logitHigh float64) map[string]any {
	return map[string]any{
		"aid":           aid,
		"scheme_id":     "multi_factor_v1",
		"evidence_hash": evidence,
		"wm_profile": map[string]any{
			"tau_input":       tauInput,
			"tau_feat":        tauFeat,
			"logit_band_low":  logitLow,
			"logit_band_high": logitHigh,
		},
	}
}

func runClaims(ctx context.Context, base string, count int) error {
	client := &http.Client{Timeout: 10 * time.Second}

	for _, c := range demoClaims(count) {
		fmt.Printf("== %s (aid=%s)\n", c.label, c.aid)
		if err := postClaim(ctx, client, base+"/verify", c.payload); err != nil {
			return fmt.Errorf("claim %s: %w", c.aid, err)
		}
	}
	return nil
}

func postClaim(ctx context.Context, client *http.Client, url string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verify returned %d: %s", resp.StatusCode, body)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "  ", "  "); err != nil {
		fmt.Printf("  response: %s\n", body)
		return nil
	}
	fmt.Printf("  response: %s\n", pretty.String())
	return nil
}
