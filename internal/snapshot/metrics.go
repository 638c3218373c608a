package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records reconciliation activity. A nil *Metrics records nothing.
type Metrics struct {
	reconcileTotal    *prometheus.CounterVec
	reconcileDuration *prometheus.HistogramVec
	pollAttempts      *prometheus.CounterVec
	imagesAffected    *prometheus.CounterVec
}

// NewMetrics creates the reconciliation metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reconcileTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snapimage",
				Name:      "reconcile_total",
				Help:      "Total number of reconciliations by action and result",
			},
			[]string{"action", "result"},
		),
		reconcileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "snapimage",
				Name:      "reconcile_duration_seconds",
				Help:      "Duration of reconciliation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 12), // 500ms to ~17min
			},
			[]string{"action"},
		),
		pollAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snapimage",
				Name:      "poll_attempts_total",
				Help:      "Total number of image status lookups while waiting",
			},
			[]string{"action"},
		),
		imagesAffected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "snapimage",
				Name:      "images_affected_total",
				Help:      "Total number of images created or deleted by outcome",
			},
			[]string{"action", "outcome"},
		),
	}

	reg.MustRegister(
		m.reconcileTotal,
		m.reconcileDuration,
		m.pollAttempts,
		m.imagesAffected,
	)

	return m
}

func (m *Metrics) recordReconcile(action Action, result string, seconds float64) {
	if m == nil {
		return
	}
	m.reconcileTotal.WithLabelValues(string(action), result).Inc()
	m.reconcileDuration.WithLabelValues(string(action)).Observe(seconds)
}

func (m *Metrics) recordPoll(action Action, attempts int) {
	if m == nil || attempts == 0 {
		return
	}
	m.pollAttempts.WithLabelValues(string(action)).Add(float64(attempts))
}

func (m *Metrics) recordImage(action Action, img AffectedImage) {
	if m == nil {
		return
	}
	outcome := "pending"
	switch {
	case img.Error != "":
		outcome = "error"
	case img.Success != "":
		outcome = "success"
	}
	m.imagesAffected.WithLabelValues(string(action), outcome).Inc()
}
