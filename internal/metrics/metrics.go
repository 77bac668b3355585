package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics of a valuation run.
type Registry struct {
	*prometheus.Registry

	disclosureYears *prometheus.CounterVec
	entities        *prometheus.CounterVec
	sourceDuration  *prometheus.HistogramVec
	valuationRows   prometheus.Gauge
	runDuration     prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		disclosureYears: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erva_disclosure_years_total",
				Help: "Disclosure years processed, by outcome",
			},
			[]string{"status"},
		),

		entities: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erva_entities_total",
				Help: "Entities processed, by outcome",
			},
			[]string{"status"},
		),

		sourceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "erva_source_request_duration_seconds",
				Help:    "External source fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		valuationRows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "erva_valuation_rows",
				Help: "Valuation rows produced by the last run",
			},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "erva_run_duration_seconds",
				Help:    "Full pipeline run duration in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
	}

	reg.MustRegister(r.disclosureYears)
	reg.MustRegister(r.entities)
	reg.MustRegister(r.sourceDuration)
	reg.MustRegister(r.valuationRows)
	reg.MustRegister(r.runDuration)

	return r
}

// Disclosure year outcomes.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Entity outcomes.
const (
	StatusValued  = "valued"
	StatusSkipped = "skipped"
)

// RecordDisclosureYear records one processed disclosure year.
func (r *Registry) RecordDisclosureYear(status string) {
	r.disclosureYears.WithLabelValues(status).Inc()
}

// RecordEntity records one processed entity.
func (r *Registry) RecordEntity(status string) {
	r.entities.WithLabelValues(status).Inc()
}

// ObserveSourceRequest records the duration of one source fetch.
func (r *Registry) ObserveSourceRequest(source string, seconds float64) {
	r.sourceDuration.WithLabelValues(source).Observe(seconds)
}

// SetValuationRows sets the total rows produced by the run.
func (r *Registry) SetValuationRows(n int) {
	r.valuationRows.Set(float64(n))
}

// ObserveRun records the duration of a full pipeline run.
func (r *Registry) ObserveRun(seconds float64) {
	r.runDuration.Observe(seconds)
}

// Handler returns an HTTP handler exposing the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
