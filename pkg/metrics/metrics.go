package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the dedicated registry served on /api/metrics. A custom
// registry keeps test binaries from tripping on duplicate registration
// against the global default.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Custom histogram buckets optimized for API response times ranging from
	// milliseconds to 30+ seconds.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Object Storage Metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	OnboardingStepTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_onboarding_step_transitions_total",
			Help: "Total number of onboarding step transitions",
		},
		[]string{"direction", "status"},
	)

	OnboardingSaves = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_onboarding_saves_total",
			Help: "Total number of onboarding persistence attempts by path",
		},
		[]string{"path", "status"},
	)

	OnboardingCompletions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_onboarding_completions_total",
			Help: "Total number of onboarding completion attempts",
		},
		[]string{"status"},
	)

	ProfileCompletionScore = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tavvy_profile_completion_score",
			Help:    "Profile completion score observed at save time",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	PhotoUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_photo_uploads_total",
			Help: "Total number of profile photo uploads",
		},
		[]string{"slot", "status"},
	)

	ProProfileViews = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_pro_profile_views_total",
			Help: "Total number of public pro profile views",
		},
		[]string{"pro_slug"},
	)

	ProAuthLoginRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_pro_auth_login_requests_total",
			Help: "Total pro login link requests",
		},
		[]string{"status"},
	)

	ProAuthVerifyRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_pro_auth_verify_requests_total",
			Help: "Total pro login verification attempts",
		},
		[]string{"status"},
	)

	CRMTriggerCalls = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tavvy_crm_trigger_calls_total",
			Help: "Total CRM webhook trigger deliveries",
		},
		[]string{"trigger", "status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers process-level collectors and stamps the service name.
func Init(serviceName string) {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	buildInfo := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tavvy_build_info",
			Help: "Build information",
		},
		[]string{"service_name"},
	)
	buildInfo.WithLabelValues(serviceName).Set(1)
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
