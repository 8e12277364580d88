package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cash_orders_created_total",
		Help: "Cash orders created",
	})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cash_orders_deleted_total",
		Help: "Cash orders deleted (with distribution reversal)",
	})

	ReturnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "return_orders_total",
			Help: "Return orders by reason",
		},
		[]string{"reason"},
	)

	ClaimsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "claims_created_total",
		Help: "Vendor claims created",
	})

	PeriodClosuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "period_closures_total",
		Help: "Week closures executed",
	})

	// System gauges fed by internal/monitoring.
	SystemCPUPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_percent",
		Help: "Host CPU utilization",
	})

	SystemMemoryPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_percent",
		Help: "Host memory utilization",
	})

	SystemDiskPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_disk_percent",
		Help: "Root filesystem utilization",
	})
)
