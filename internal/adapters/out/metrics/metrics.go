// Package metrics exports unit of work, HTTP and job signals to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"shiptrack/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shiptrack"

// Metrics holds every collector of the service. Create it once per registry.
type Metrics struct {
	units         *prometheus.CounterVec
	unitDuration  *prometheus.HistogramVec
	ledgerEntries *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	overdue       prometheus.Gauge
	jobRuns       *prometheus.CounterVec
}

// New creates the collectors and registers them. A nil registerer means the default registry.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Units of work by name, outcome and error code.",
		}, []string{"unit", "outcome", "code"}),
		unitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_duration_seconds",
			Help:      "Unit of work latency from begin to commit or rollback.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"unit"}),
		ledgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_entries_total",
			Help:      "Package history entries committed by unit.",
		}, []string{"unit"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		overdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_shipments",
			Help:      "In-transit shipments past their estimated delivery at the last scan.",
		}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Background job runs by job and result.",
		}, []string{"job", "result"}),
	}

	registerer.MustRegister(
		m.units,
		m.unitDuration,
		m.ledgerEntries,
		m.httpRequests,
		m.httpDuration,
		m.overdue,
		m.jobRuns,
	)
	return m
}

// ObserveUnit records one coordinator run.
func (m *Metrics) ObserveUnit(unit, outcome string, code errs.Code, duration time.Duration, ledgerEntries int) {
	label := string(code)
	if label == "" {
		label = "OK"
	}
	m.units.WithLabelValues(unit, outcome, label).Inc()
	m.unitDuration.WithLabelValues(unit).Observe(duration.Seconds())
	if ledgerEntries > 0 {
		m.ledgerEntries.WithLabelValues(unit).Add(float64(ledgerEntries))
	}
}

// ObserveRequest records one served HTTP request. Route is the registered path template.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) SetOverdueShipments(n int) {
	m.overdue.Set(float64(n))
}

// ObserveJob counts a job run; a nil err is reported as "ok".
func (m *Metrics) ObserveJob(job string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}
