package metrics

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// Metrics holds Prometheus counters and gauges for trimmer activity. It
// implements trimmer.Observer.
type Metrics struct {
	registry         *prometheus.Registry
	dragsTotal       *prometheus.CounterVec
	seeksTotal       *prometheus.CounterVec
	togglesTotal     *prometheus.CounterVec
	submissionsTotal *prometheus.CounterVec
	activeSelectors  prometheus.Gauge
}

// New creates and registers Prometheus metrics for the trimmer.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	dragsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cliptrim_drags_total",
		Help: "Total number of handle drags started",
	}, []string{"handle"})
	seeksTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cliptrim_seeks_total",
		Help: "Total number of playback position writes, by source",
	}, []string{"source"})
	togglesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cliptrim_toggles_total",
		Help: "Total number of play/pause toggles, by resulting state",
	}, []string{"state"})
	submissionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cliptrim_submissions_total",
		Help: "Total number of submission attempts, by result",
	}, []string{"result"})
	activeSelectors := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cliptrim_active_selectors",
		Help: "Number of selectors that have not been destroyed",
	})

	registry.MustRegister(
		dragsTotal,
		seeksTotal,
		togglesTotal,
		submissionsTotal,
		activeSelectors,
	)

	return &Metrics{
		registry:         registry,
		dragsTotal:       dragsTotal,
		seeksTotal:       seeksTotal,
		togglesTotal:     togglesTotal,
		submissionsTotal: submissionsTotal,
		activeSelectors:  activeSelectors,
	}
}

func (m *Metrics) SelectorCreated(string) {
	m.activeSelectors.Inc()
}

func (m *Metrics) SelectorDestroyed(string) {
	m.activeSelectors.Dec()
}

func (m *Metrics) DragStarted(h trimmer.Handle) {
	m.dragsTotal.WithLabelValues(h.String()).Inc()
}

func (m *Metrics) Seeked(source trimmer.SeekSource) {
	m.seeksTotal.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) Toggled(playing bool) {
	state := "pause"
	if playing {
		state = "play"
	}
	m.togglesTotal.WithLabelValues(state).Inc()
}

func (m *Metrics) Submitted(err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, trimmer.ErrMissingTitle):
		result = "missing_title"
	default:
		result = "error"
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Router returns a chi router exposing /metrics.
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

// WriteText writes every metric family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
