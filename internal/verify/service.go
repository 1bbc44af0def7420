package verify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"wmoracle/internal/artifact"
	"wmoracle/internal/verify/metrics"
	"wmoracle/internal/watermark"
	"wmoracle/pkg/platform/audit"
	"wmoracle/pkg/requestcontext"
)

// Service runs the verification pipeline. It is safe for concurrent use:
// the registry and deriver are immutable and the emitter is non-blocking.
type Service struct {
	registry *artifact.Registry
	deriver  watermark.Deriver
	emitter  *audit.Emitter
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// New constructs a verification service. Emitter and metrics may be nil, in
// which case auditing and instrumentation are skipped.
func New(registry *artifact.Registry, deriver watermark.Deriver, emitter *audit.Emitter, m *metrics.Metrics, logger *slog.Logger, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("verify")
	}
	return &Service{
		registry: registry,
		deriver:  deriver,
		emitter:  emitter,
		metrics:  m,
		logger:   logger,
		tracer:   tracer,
	}
}

// Verify checks one authenticity claim end to end.
//
// A load failure is not an error: it folds into Ok=false with the fixed
// failure statistics so a caller cannot probe the store for which artifacts
// exist. The error return is reserved for future detector backends that can
// fail independently of the claim.
func (s *Service) Verify(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "verify.Verify", trace.WithAttributes(
		attribute.String("artifact.id", artifact.Normalize(req.Aid)),
		attribute.String("artifact.scheme_id", req.SchemeID),
	))
	defer span.End()

	path := s.registry.Resolve(req.Aid)
	if err := s.registry.Load(path); err != nil {
		result := &Result{
			Ok:        false,
			Stats:     failureStats,
			LatencyMS: millisSince(start),
		}

		if s.metrics != nil {
			s.metrics.IncrementLoadFailure()
			s.metrics.IncrementVerification(string(audit.OutcomeLoadFailed))
			s.metrics.ObserveVerify(start)
		}
		s.logger.InfoContext(ctx, "artifact load failed, claim rejected",
			"request_id", requestcontext.RequestID(ctx),
			"aid", artifact.Normalize(req.Aid),
			"scheme_id", req.SchemeID,
			"latency_ms", result.LatencyMS,
			"error", err,
		)
		s.emitAudit(ctx, req, result, audit.OutcomeLoadFailed)
		span.SetAttributes(attribute.Bool("verify.ok", false))

		return result, nil
	}

	stats := s.deriver.Derive(req.Aid, req.EvidenceHash)
	result := &Result{
		Ok:        watermark.Decide(stats, req.Profile),
		Stats:     stats,
		Loaded:    true,
		LatencyMS: millisSince(start),
	}

	outcome := audit.OutcomeRejected
	if result.Ok {
		outcome = audit.OutcomeAccepted
	}

	if s.metrics != nil {
		s.metrics.IncrementVerification(string(outcome))
		s.metrics.ObserveVerify(start)
	}
	s.logger.InfoContext(ctx, "verification completed",
		"request_id", requestcontext.RequestID(ctx),
		"aid", artifact.Normalize(req.Aid),
		"scheme_id", req.SchemeID,
		"outcome", outcome,
		"latency_ms", result.LatencyMS,
	)
	s.emitAudit(ctx, req, result, outcome)
	span.SetAttributes(attribute.Bool("verify.ok", result.Ok))

	return result, nil
}

func (s *Service) emitAudit(ctx context.Context, req Request, result *Result, outcome audit.Outcome) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(ctx, audit.Event{
		ID:           uuid.NewString(),
		Timestamp:    requestcontext.Now(ctx),
		Aid:          artifact.Normalize(req.Aid),
		SchemeID:     req.SchemeID,
		EvidenceHash: req.EvidenceHash,
		Outcome:      outcome,
		Ok:           result.Ok,
		TriggerAcc:   result.Stats.TriggerAcc,
		FeatDist:     result.Stats.FeatDist,
		LogitStat:    result.Stats.LogitStat,
		LatencyMS:    result.LatencyMS,
		RequestID:    requestcontext.RequestID(ctx),
		ClientIP:     requestcontext.ClientIP(ctx),
		ClientName:   clientName(requestcontext.UserAgent(ctx)),
	})
}

// clientName condenses a User-Agent header into a short browser or tool name
// for the audit trail.
func clientName(ua string) string {
	if ua == "" {
		return ""
	}
	parsed := useragent.New(ua)
	name, version := parsed.Browser()
	if name == "" {
		return ua
	}
	return strings.TrimSpace(name + " " + version)
}

// millisSince returns elapsed whole milliseconds, never negative.
func millisSince(start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
