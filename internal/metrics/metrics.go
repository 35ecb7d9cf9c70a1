// Package metrics exposes Prometheus collectors describing differentiation
// sessions: how often tapes are reset, how large they grew, how many reverse
// passes ran and how much arena memory is held.
//
// Collectors are registered on the default registry at init, so any binary
// that serves promhttp.Handler() exports them without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsReset = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adcore_sessions_reset_total",
		Help: "Total number of differentiation sessions ended by a context reset",
	})

	gradientPasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adcore_gradient_passes_total",
		Help: "Total number of reverse sweeps over a tape",
	})

	tapeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "adcore_tape_nodes_per_session",
		Help:    "Number of tape nodes recorded in a session at reset time",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	arenaBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "adcore_arena_reserved_bytes",
		Help: "Arena bytes reserved at the last reset, by context name. Contexts sharing a name report the last writer",
	}, []string{"context"})
)

// ObserveReset records the end of a session of the named context that
// recorded nodes tape nodes and held reserved arena bytes.
func ObserveReset(context string, nodes int, reserved int64) {
	sessionsReset.Inc()
	tapeNodes.Observe(float64(nodes))
	arenaBytes.WithLabelValues(context).Set(float64(reserved))
}

// ObserveGradient records one reverse sweep.
func ObserveGradient() {
	gradientPasses.Inc()
}
