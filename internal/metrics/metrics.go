// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveEmployees = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "employees_active",
			Help: "Number of active (not soft-deleted) employee records.",
		})

	EmployeeCreateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "employee_create_total",
			Help: "Cumulative number of employee records created.",
		})

	EmployeeUpdateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "employee_update_total",
			Help: "Cumulative number of employee records updated.",
		})

	EmployeeDeleteTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "employee_delete_total",
			Help: "Cumulative number of employee records soft-deleted.",
		})

	QueryCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_cache_hits_total",
			Help: "Cumulative number of list queries served from the result cache.",
		})

	QueryCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_cache_misses_total",
			Help: "Cumulative number of list queries computed on a cache miss.",
		})

	AuditEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Cumulative number of audited API requests.",
		})

	SeedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seed_records_total",
			Help: "Number of records restored from the seed database at boot.",
		})
)

// SetActiveEmployees records the current active-record count.
func SetActiveEmployees(n int) { ActiveEmployees.Set(float64(n)) }

func init() {
	prometheus.MustRegister(
		ActiveEmployees,
		EmployeeCreateTotal,
		EmployeeUpdateTotal,
		EmployeeDeleteTotal,
		QueryCacheHits,
		QueryCacheMisses,
		AuditEventsTotal,
		SeedRecordsTotal,
	)
}
