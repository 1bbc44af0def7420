package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module: verdict counts
// and the latency of the orchestrated verify path.
type Metrics struct {
	Verifications  *prometheus.CounterVec
	LoadFailures   prometheus.Counter
	VerifyDuration prometheus.Histogram
}

// New creates a Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wmoracle_verifications_total",
			Help: "Total verification calls by outcome",
		}, []string{"outcome"}),
		LoadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wmoracle_artifact_load_failures_total",
			Help: "Verification calls where the artifact could not be loaded",
		}),
		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wmoracle_verify_duration_seconds",
			Help:    "Duration of end-to-end verification calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementVerification records one verdict by outcome label.
func (m *Metrics) IncrementVerification(outcome string) {
	m.Verifications.WithLabelValues(outcome).Inc()
}

// IncrementLoadFailure records an artifact load failure.
func (m *Metrics) IncrementLoadFailure() {
	m.LoadFailures.Inc()
}

// ObserveVerify records the duration of a verification call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveVerify(start time.Time) {
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}
