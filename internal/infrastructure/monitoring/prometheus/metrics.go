package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric vector the service records.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Compliance engine
	ComplianceEvaluationsTotal CounterVec
	LeakRateObserved           HistogramVec
	AlertsRaisedTotal          CounterVec

	// Risk scoring
	RiskAssessmentsTotal CounterVec
	RiskScoreObserved    HistogramVec
	RiskCacheHitsTotal   CounterVec
	RiskCacheMissesTotal CounterVec

	// Scheduled sweeps
	SweepRunsTotal         CounterVec
	SweepDuration          HistogramVec
	OverdueInspections     GaugeVec
	ExpiringCertifications GaugeVec

	// Messaging
	EventsPublishedTotal CounterVec
	EventsConsumedTotal  CounterVec

	// Infrastructure
	DBQueryDuration HistogramVec
	ErrorsTotal     CounterVec
}

// Histogram buckets tuned to this workload.
var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDBDurationBuckets    = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultSweepDurationBuckets = []float64{.1, .5, 1, 5, 15, 30, 60, 300}
	LeakRateBuckets             = []float64{0, 5, 10, 15, 20, 30, 50, 100, 200}
	RiskScoreBuckets            = []float64{0, 10, 20, 40, 70, 100, 150}
)

// NewAppMetrics registers the full metric set on the collector.
func NewAppMetrics(collector Collector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total",
		"Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds",
		"HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests",
		"In-flight HTTP requests", "method")

	m.ComplianceEvaluationsTotal = collector.RegisterCounter("compliance_evaluations_total",
		"Leak rate compliance evaluations", "result")
	m.LeakRateObserved = collector.RegisterHistogram("leak_rate_percent",
		"Annualized leak rates computed during inspections", LeakRateBuckets, "equipment_type")
	m.AlertsRaisedTotal = collector.RegisterCounter("alerts_raised_total",
		"Compliance alerts raised", "alert_type")

	m.RiskAssessmentsTotal = collector.RegisterCounter("risk_assessments_total",
		"Risk assessments performed", "level")
	m.RiskScoreObserved = collector.RegisterHistogram("risk_score",
		"Risk scores produced by the scorer", RiskScoreBuckets, "level")
	m.RiskCacheHitsTotal = collector.RegisterCounter("risk_cache_hits_total",
		"Risk assessment cache hits")
	m.RiskCacheMissesTotal = collector.RegisterCounter("risk_cache_misses_total",
		"Risk assessment cache misses")

	m.SweepRunsTotal = collector.RegisterCounter("sweep_runs_total",
		"Scheduled compliance sweeps", "sweep", "status")
	m.SweepDuration = collector.RegisterHistogram("sweep_duration_seconds",
		"Scheduled sweep duration", DefaultSweepDurationBuckets, "sweep")
	m.OverdueInspections = collector.RegisterGauge("overdue_inspections",
		"Equipment with overdue inspections at last sweep")
	m.ExpiringCertifications = collector.RegisterGauge("expiring_certifications",
		"Technician certifications expiring within the warning window at last sweep")

	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total",
		"Domain events published to the broker", "topic", "status")
	m.EventsConsumedTotal = collector.RegisterCounter("events_consumed_total",
		"Domain events consumed from the broker", "topic", "status")

	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds",
		"Database query duration", DefaultDBDurationBuckets, "repository", "operation")
	m.ErrorsTotal = collector.RegisterCounter("errors_total",
		"Errors by component", "component", "error_type")

	return m
}

// RecordHTTPRequest updates the request counter and latency histogram.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQuery observes query latency and counts failures.
func RecordDBQuery(m *AppMetrics, repository, operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(repository, operation).Observe(duration.Seconds())
	if err != nil {
		m.ErrorsTotal.WithLabelValues(repository, "query_error").Inc()
	}
}

// RecordSweep records one sweep run with its outcome and duration.
func RecordSweep(m *AppMetrics, sweep string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.SweepRunsTotal.WithLabelValues(sweep, status).Inc()
	m.SweepDuration.WithLabelValues(sweep).Observe(duration.Seconds())
}

// ComplianceMetrics adapts AppMetrics to the compliance service's metrics
// port.
type ComplianceMetrics struct {
	metrics *AppMetrics
}

func NewComplianceMetrics(m *AppMetrics) *ComplianceMetrics {
	return &ComplianceMetrics{metrics: m}
}

func (c *ComplianceMetrics) ComplianceEvaluated(compliant bool) {
	result := "compliant"
	if !compliant {
		result = "violation"
	}
	c.metrics.ComplianceEvaluationsTotal.WithLabelValues(result).Inc()
}

func (c *ComplianceMetrics) AlertRaised(alertType string) {
	c.metrics.AlertsRaisedTotal.WithLabelValues(alertType).Inc()
}

// RiskMetrics adapts AppMetrics to the risk service's metrics port.
type RiskMetrics struct {
	metrics *AppMetrics
}

func NewRiskMetrics(m *AppMetrics) *RiskMetrics {
	return &RiskMetrics{metrics: m}
}

func (r *RiskMetrics) RiskScored(level string, score int) {
	r.metrics.RiskAssessmentsTotal.WithLabelValues(level).Inc()
	r.metrics.RiskScoreObserved.WithLabelValues(level).Observe(float64(score))
}

//Personal.AI order the ending
