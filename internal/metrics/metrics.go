// Package metrics exposes generation counters in the Prometheus text format.
// The CLI has no listener, so metrics are written out with WriteTextfile for
// a node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"stochwalk/internal/walk"
)

type Metrics struct {
	Registry *prometheus.Registry

	PathsGenerated    *prometheus.CounterVec
	JumpsApplied      *prometheus.CounterVec
	GenerationSeconds *prometheus.HistogramVec
	Terminal          *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PathsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stochwalk_paths_generated_total",
			Help: "Total number of sample paths generated",
		}, []string{"model"}),
		JumpsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stochwalk_jumps_applied_total",
			Help: "Total number of jumps folded into generated paths",
		}, []string{"model"}),
		GenerationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stochwalk_generation_seconds",
			Help:    "Wall time of a single path or Monte Carlo batch",
			Buckets: prometheus.DefBuckets,
		}, []string{"model", "kind"}),
		Terminal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stochwalk_terminal_value",
			Help: "Terminal value statistics of the last Monte Carlo batch",
		}, []string{"model", "stat"}),
	}
}

func (m *Metrics) ObservePath(model string, p *walk.Path, elapsed time.Duration) {
	m.PathsGenerated.WithLabelValues(model).Inc()
	m.JumpsApplied.WithLabelValues(model).Add(float64(len(p.Jumps)))
	m.GenerationSeconds.WithLabelValues(model, "path").Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveEnsemble(model string, e *walk.Ensemble, s *walk.Summary, elapsed time.Duration) {
	m.PathsGenerated.WithLabelValues(model).Add(float64(e.Len()))
	m.GenerationSeconds.WithLabelValues(model, "batch").Observe(elapsed.Seconds())

	for stat, v := range map[string]float64{
		"mean":   s.Mean,
		"stddev": s.StdDev,
		"min":    s.Min,
		"max":    s.Max,
		"median": s.Median,
	} {
		m.Terminal.WithLabelValues(model, stat).Set(v)
	}
}

func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
