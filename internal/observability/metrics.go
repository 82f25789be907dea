package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	apiErrorsTotal       *prometheus.CounterVec
	activityRecordsTotal *prometheus.CounterVec
	activityListRequests *prometheus.CounterVec
	activityListLatency  prometheus.Histogram
	reportedErrorsTotal  *prometheus.CounterVec
	cronJobRunsTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		activityRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_records_total",
			Help: "Audit records written, by action, resource and outcome.",
		}, []string{"action", "resource", "outcome"})

		activityListRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_list_requests_total",
			Help: "Activity log list requests, by cache result.",
		}, []string{"result"})

		activityListLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "activity_list_latency_seconds",
			Help:    "Latency of activity log list queries.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		reportedErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reported_errors_total",
			Help: "Errors captured by the error reporter, by component.",
		}, []string{"component"})

		cronJobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cron_job_runs_total",
			Help: "Scheduled job executions, by job and outcome.",
		}, []string{"job", "outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			activityRecordsTotal,
			activityListRequests,
			activityListLatency,
			reportedErrorsTotal,
			cronJobRunsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ActivityRecords exposes the counter for audit record writes.
func ActivityRecords() *prometheus.CounterVec {
	RegisterMetrics()
	return activityRecordsTotal
}

// ActivityListRequests exposes the counter for activity list cache results.
func ActivityListRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return activityListRequests
}

// ActivityListLatency exposes the latency histogram for activity list queries.
func ActivityListLatency() prometheus.Histogram {
	RegisterMetrics()
	return activityListLatency
}

// ReportedErrors exposes the counter for captured errors.
func ReportedErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return reportedErrorsTotal
}

// CronJobRuns exposes the counter for scheduled job executions.
func CronJobRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return cronJobRunsTotal
}
