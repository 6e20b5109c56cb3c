package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lngopt"

// Collector records run cache and candidate evaluation counters.
// It satisfies ports.MetricsRecorder.
type Collector struct {
	registry   *prometheus.Registry
	runs       *prometheus.CounterVec
	candidates *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Optimisation runs by mode and whether the run cache was reused.",
		}, []string{"mode", "reused"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Vessel/route candidates evaluated, by outcome.",
		}, []string{"outcome"}),
	}
	c.registry.MustRegister(c.runs, c.candidates)
	return c
}

func (c *Collector) RecordRun(mode string, reused bool) {
	c.runs.WithLabelValues(mode, strconv.FormatBool(reused)).Inc()
}

func (c *Collector) RecordCandidate(outcome string) {
	c.candidates.WithLabelValues(outcome).Inc()
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }
