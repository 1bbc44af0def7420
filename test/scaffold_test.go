package test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"wmoracle/internal/artifact"
	httpapi "wmoracle/internal/http"
	"wmoracle/internal/verify"
	verifyhandler "wmoracle/internal/verify/handler"
	"wmoracle/internal/watermark"
	"wmoracle/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := artifact.NewRegistry(t.TempDir(), artifact.DefaultExt)
	service := verify.New(registry, watermark.NewBlakeDeriver(), nil, nil, logger, nil)

	return httpapi.NewRouter(httpapi.Deps{
		Logger: logger,
		Verify: verifyhandler.New(service, logger),
	})
}

func TestWireContract(t *testing.T) {
	testutil.Given(t, "the HTTP router", func(t *testing.T) {
		router := newRouter(t)

		testutil.When(t, "calling GET /health", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

			testutil.Then(t, "it should answer ok", func(t *testing.T) {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
				}
			})
		})

		testutil.When(t, "calling POST /verify without a body", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/verify"))

			testutil.Then(t, "it should reject the protocol violation", func(t *testing.T) {
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
				}
			})
		})

		testutil.When(t, "claiming a nonexistent artifact", func(t *testing.T) {
			body := map[string]any{
				"aid":           "feedfacefeedface",
				"scheme_id":     "multi_factor_v1",
				"evidence_hash": "aa",
				"wm_profile": map[string]any{
					"tau_input":       0.0,
					"tau_feat":        1.0,
					"logit_band_low":  -1.0,
					"logit_band_high": 1.0,
				},
			}
			rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/verify", body))

			testutil.Then(t, "it should answer 200 with a negative verdict", func(t *testing.T) {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
				}
				var resp struct {
					Ok bool `json:"ok"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Ok {
					t.Fatal("expected ok=false for a missing artifact")
				}
			})
		})
	})
}
