package diagonal

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes recorded on Metrics.Runs.
const (
	OutcomeCompleted = "completed"
	OutcomeReset     = "reset"
	OutcomeCanceled  = "canceled"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Metrics holds the scanner's Prometheus collectors.
// All methods are safe on a nil *Metrics, which records nothing.
type Metrics struct {
	Runs       *prometheus.CounterVec
	Candidates *prometheus.CounterVec
	Rejections *prometheus.CounterVec
	Found      *prometheus.CounterVec
	Duration   prometheus.Histogram
	SieveSize  prometheus.Gauge
}

// NewMetrics registers the collectors on reg.
// Registering twice on the same registry panics, as promauto does.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zeckit",
			Subsystem: "scan",
			Name:      "runs_total",
			Help:      "Diagonal scans by outcome.",
		}, []string{"outcome"}),
		Candidates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zeckit",
			Subsystem: "scan",
			Name:      "candidates_total",
			Help:      "Candidates reaching each pipeline stage.",
		}, []string{"stage"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zeckit",
			Subsystem: "scan",
			Name:      "rejections_total",
			Help:      "Candidates discarded, by reason.",
		}, []string{"reason"}),
		Found: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zeckit",
			Subsystem: "scan",
			Name:      "primes_found_total",
			Help:      "Probable primes found, by family.",
		}, []string{"family"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zeckit",
			Subsystem: "scan",
			Name:      "duration_seconds",
			Help:      "Wall time of finished scans.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		SieveSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "zeckit",
			Subsystem: "scan",
			Name:      "sieve_size",
			Help:      "Live sieve size of the most recent scan.",
		}),
	}
}

func (m *Metrics) run(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSkipped {
		m.Duration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) stage(name string) {
	if m == nil {
		return
	}
	m.Candidates.WithLabelValues(name).Inc()
}

func (m *Metrics) reject(r Reason) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(string(r)).Inc()
}

func (m *Metrics) found(family string) {
	if m == nil {
		return
	}
	m.Found.WithLabelValues(family).Inc()
}

func (m *Metrics) sieve(n int) {
	if m == nil {
		return
	}
	m.SieveSize.Set(float64(n))
}
