package verify

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wmoracle/internal/artifact"
	"wmoracle/internal/watermark"
	"wmoracle/pkg/platform/audit"
	"wmoracle/pkg/requestcontext"
)

var lenientProfile = watermark.Profile{
	TauInput:      0.0,
	TauFeat:       1.0,
	LogitBandLow:  -1.0,
	LogitBandHigh: 1.0,
}

func newTestService(t *testing.T, root string, emitter *audit.Emitter) *Service {
	t.Helper()
	registry := artifact.NewRegistry(root, artifact.DefaultExt)
	return New(registry, watermark.NewBlakeDeriver(), emitter, nil, slog.New(slog.DiscardHandler), nil)
}

func seedArtifact(t *testing.T, root, aid string) {
	t.Helper()
	path := filepath.Join(root, artifact.Normalize(aid)+artifact.DefaultExt)
	require.NoError(t, os.WriteFile(path, []byte("weights"), 0o600))
}

func TestVerifyAcceptsPresentArtifactWithLenientProfile(t *testing.T) {
	root := t.TempDir()
	aid := strings.Repeat("abcd", 16)
	evidence := strings.Repeat("1234", 16)
	seedArtifact(t, root, aid)

	svc := newTestService(t, root, nil)
	result, err := svc.Verify(context.Background(), Request{
		Aid:          aid,
		SchemeID:     "wm-v1",
		EvidenceHash: evidence,
		Profile:      lenientProfile,
	})
	require.NoError(t, err)

	assert.True(t, result.Ok)
	assert.True(t, result.Loaded)
	assert.GreaterOrEqual(t, result.Stats.TriggerAcc, 0.8)
	assert.LessOrEqual(t, result.Stats.TriggerAcc, 1.0)
	assert.GreaterOrEqual(t, result.Stats.FeatDist, 0.01)
	assert.LessOrEqual(t, result.Stats.FeatDist, 0.21)
	assert.GreaterOrEqual(t, result.Stats.LogitStat, -0.05)
	assert.LessOrEqual(t, result.Stats.LogitStat, 0.05)
	assert.GreaterOrEqual(t, result.LatencyMS, int64(0))
}

func TestVerifyMissingArtifactFoldsToRejection(t *testing.T) {
	svc := newTestService(t, t.TempDir(), nil)

	result, err := svc.Verify(context.Background(), Request{
		Aid:          strings.Repeat("beef", 16),
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("00", 32),
		Profile:      lenientProfile,
	})
	require.NoError(t, err)

	assert.False(t, result.Ok)
	assert.False(t, result.Loaded)
	assert.Equal(t, 0.0, result.Stats.TriggerAcc)
	assert.Equal(t, 1.0, result.Stats.FeatDist)
	assert.Equal(t, 0.0, result.Stats.LogitStat)
	assert.GreaterOrEqual(t, result.LatencyMS, int64(0))
}

func TestVerifyUnachievableTriggerThresholdRejects(t *testing.T) {
	root := t.TempDir()
	aid := strings.Repeat("abcd", 16)
	seedArtifact(t, root, aid)

	profile := lenientProfile
	profile.TauInput = 0.9999999

	svc := newTestService(t, root, nil)
	result, err := svc.Verify(context.Background(), Request{
		Aid:          aid,
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("1234", 16),
		Profile:      profile,
	})
	require.NoError(t, err)

	assert.False(t, result.Ok)
	assert.True(t, result.Loaded)
}

func TestVerifyInvertedBandAlwaysRejects(t *testing.T) {
	root := t.TempDir()
	aid := strings.Repeat("abcd", 16)
	seedArtifact(t, root, aid)

	profile := watermark.Profile{
		TauInput:      0.0,
		TauFeat:       1.0,
		LogitBandLow:  1.0,
		LogitBandHigh: -1.0,
	}

	svc := newTestService(t, root, nil)
	result, err := svc.Verify(context.Background(), Request{
		Aid:          aid,
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("1234", 16),
		Profile:      profile,
	})
	require.NoError(t, err)

	assert.False(t, result.Ok)
}

func TestVerifyDeterministicAcrossCalls(t *testing.T) {
	root := t.TempDir()
	aid := strings.Repeat("cafe", 16)
	seedArtifact(t, root, aid)

	svc := newTestService(t, root, nil)
	req := Request{
		Aid:          aid,
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("ff", 32),
		Profile:      lenientProfile,
	}

	first, err := svc.Verify(context.Background(), req)
	require.NoError(t, err)

	for range 5 {
		next, err := svc.Verify(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.Ok, next.Ok)
		assert.Equal(t, first.Stats, next.Stats)
	}
}

func TestVerifyPrefixedAliasResolvesToSameArtifact(t *testing.T) {
	root := t.TempDir()
	aid := strings.Repeat("abcd", 16)
	seedArtifact(t, root, aid)

	svc := newTestService(t, root, nil)
	result, err := svc.Verify(context.Background(), Request{
		Aid:          "0x" + strings.ToUpper(aid),
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("1234", 16),
		Profile:      lenientProfile,
	})
	require.NoError(t, err)

	assert.True(t, result.Loaded)
	assert.True(t, result.Ok)
}

func TestVerifyEmitsAuditEvent(t *testing.T) {
	root := t.TempDir()
	aid := strings.Repeat("abcd", 16)
	seedArtifact(t, root, aid)

	emitter := audit.NewEmitter(4, slog.New(slog.DiscardHandler))
	svc := newTestService(t, root, emitter)

	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	ctx = requestcontext.WithTime(ctx, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.9", "curl/8.5.0")

	result, err := svc.Verify(ctx, Request{
		Aid:          "0x" + aid,
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("1234", 16),
		Profile:      lenientProfile,
	})
	require.NoError(t, err)
	require.True(t, result.Ok)

	select {
	case event := <-emitter.Inbox():
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, aid, event.Aid)
		assert.Equal(t, "wm-v1", event.SchemeID)
		assert.Equal(t, audit.OutcomeAccepted, event.Outcome)
		assert.True(t, event.Ok)
		assert.Equal(t, result.Stats.TriggerAcc, event.TriggerAcc)
		assert.Equal(t, "req-123", event.RequestID)
		assert.Equal(t, "10.0.0.9", event.ClientIP)
		assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), event.Timestamp)
	default:
		t.Fatal("expected an audit event on the inbox")
	}
}

func TestVerifyAuditsLoadFailureDistinctly(t *testing.T) {
	emitter := audit.NewEmitter(4, slog.New(slog.DiscardHandler))
	svc := newTestService(t, t.TempDir(), emitter)

	_, err := svc.Verify(context.Background(), Request{
		Aid:          strings.Repeat("dead", 16),
		SchemeID:     "wm-v1",
		EvidenceHash: strings.Repeat("00", 32),
		Profile:      lenientProfile,
	})
	require.NoError(t, err)

	select {
	case event := <-emitter.Inbox():
		assert.Equal(t, audit.OutcomeLoadFailed, event.Outcome)
		assert.False(t, event.Ok)
		assert.Equal(t, 1.0, event.FeatDist)
	default:
		t.Fatal("expected an audit event on the inbox")
	}
}
