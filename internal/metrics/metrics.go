// Package metrics exposes prometheus counters for contract capture and
// posting validation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "haulbook_"

	resultSuccess = "success"
	resultError   = "error"
)

// Metrics holds the collectors. It implements workflow.Recorder.
type Metrics struct {
	stageSaves       *prometheus.CounterVec
	finalizeTotal    *prometheus.CounterVec
	finalizeLatency  *prometheus.HistogramVec
	obligationsTotal prometheus.Counter
	postingChecks    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stageSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stage_saves_total",
				Help: "Workflow stage saves by stage and result",
			},
			[]string{"stage", "result"},
		),
		finalizeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "finalize_total",
				Help: "Contract finalizations by result",
			},
			[]string{"result"},
		),
		finalizeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "finalize_latency_seconds",
				Help:    "Contract finalize latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		obligationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "obligations_issued_total",
				Help: "Payable obligations emitted to third-party carriers",
			},
		),
		postingChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "posting_checks_total",
				Help: "Ledger posting validations by outcome",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.stageSaves, m.finalizeTotal, m.finalizeLatency, m.obligationsTotal, m.postingChecks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// StageSaved counts a stage save attempt.
func (m *Metrics) StageSaved(stage string, ok bool) {
	if m == nil {
		return
	}
	m.stageSaves.WithLabelValues(stage, result(ok)).Inc()
}

// Finalized records a finalize attempt.
func (m *Metrics) Finalized(ok, obligation bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	r := result(ok)
	m.finalizeTotal.WithLabelValues(r).Inc()
	m.finalizeLatency.WithLabelValues(r).Observe(elapsed.Seconds())
	if ok && obligation {
		m.obligationsTotal.Inc()
	}
}

// PostingChecked counts a posting validation. Outcome is "balanced",
// "imbalanced", "malformed" or "error".
func (m *Metrics) PostingChecked(outcome string) {
	if m == nil {
		return
	}
	m.postingChecks.WithLabelValues(outcome).Inc()
}

func result(ok bool) string {
	if ok {
		return resultSuccess
	}
	return resultError
}
