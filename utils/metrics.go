package utils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics records reconciliation outcomes. Counter failures never block
// the engine; metering is observe-only.
type EngineMetrics struct {
	Actions       *prometheus.CounterVec
	PhaseDuration *prometheus.HistogramVec
	PhasePanics   *prometheus.CounterVec
	Fanout        *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metricsInst *EngineMetrics
)

// Metrics returns the process-wide engine metrics, registering them on first use.
func Metrics() *EngineMetrics {
	metricsOnce.Do(func() {
		metricsInst = newEngineMetrics()
	})
	return metricsInst
}

func newEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		Actions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guardian",
			Subsystem: "reconcile",
			Name:      "actions_total",
			Help:      "Corrective actions issued by the reconciliation engine, labeled by phase and result",
		}, []string{"phase", "result"}),
		PhaseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "guardian",
			Subsystem: "reconcile",
			Name:      "phase_duration_seconds",
			Help:      "Duration of reconciliation phase runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		PhasePanics: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guardian",
			Subsystem: "reconcile",
			Name:      "phase_panics_total",
			Help:      "Panics recovered at a phase boundary",
		}, []string{"phase"}),
		Fanout: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guardian",
			Subsystem: "crossguild",
			Name:      "fanout_total",
			Help:      "Per-guild cross-guild sync outcomes, labeled by action and result",
		}, []string{"action", "result"}),
	}
}
