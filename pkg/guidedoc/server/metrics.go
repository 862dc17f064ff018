package server

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

const namespace = "guidedoc"

// Result label values.
const (
	resultOK        = "ok"
	resultNoContent = "no_content"
	resultError     = "error"
)

// metrics holds the server collectors, registered on their own registry.
type metrics struct {
	reg         *prom.Registry
	synthesis   *prom.CounterVec
	diagnostics *prom.CounterVec
	duration    prom.Histogram
	cache       *prom.CounterVec
}

func newMetrics(reg *prom.Registry) *metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &metrics{
		reg: reg,
		synthesis: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_total",
			Help:      "Synthesized documents by result",
		}, []string{"result"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Recovered synthesis problems by kind",
		}, []string{"kind"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "synthesis_duration_seconds",
			Help:      "Time to load rows and synthesize one document",
			Buckets:   prom.DefBuckets,
		}),
		cache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "row_cache_total",
			Help:      "Row cache lookups by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.synthesis, m.diagnostics, m.duration, m.cache)
	return m
}

func (m *metrics) observeSynthesis(result string, diags []*models.SynthesisError, elapsed time.Duration) {
	m.synthesis.WithLabelValues(result).Inc()
	m.duration.Observe(elapsed.Seconds())
	for _, d := range diags {
		m.diagnostics.WithLabelValues(d.Kind.String()).Inc()
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
