package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "certificates_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	catalogSearches   *prometheus.CounterVec
	catalogSelections *prometheus.CounterVec
	calculatorRuns    *prometheus.CounterVec

	renderTotal   *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec

	clientCache *prometheus.CounterVec
)

// Init registers the service metrics with the default registry. Helpers are no-ops until it runs.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		catalogSearches = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "catalog_searches_total",
				Help: "Catalog lookups by catalog and whether a filter was applied",
			},
			[]string{"catalog", "filtered"},
		)
		catalogSelections = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "catalog_selections_total",
				Help: "Equipment selections by catalog and resulting state",
			},
			[]string{"catalog", "state"},
		)
		calculatorRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculator_runs_total",
				Help: "Calculator invocations by calculator and result",
			},
			[]string{"calculator", "result"},
		)
		renderTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "render_total",
				Help: "Document renders by format and result",
			},
			[]string{"format", "result"},
		)
		renderLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "render_latency_seconds",
				Help:    "Document render latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)
		clientCache = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "client_history_cache_total",
				Help: "Recent-client cache lookups by outcome",
			},
			[]string{"outcome"},
		)

		prometheus.MustRegister(
			httpRequests, httpLatency,
			catalogSearches, catalogSelections, calculatorRuns,
			renderTotal, renderLatency,
			clientCache,
		)
	})
}

func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func IncCatalogSearch(catalog string, filtered bool) {
	if catalogSearches == nil {
		return
	}
	catalogSearches.WithLabelValues(catalog, strconv.FormatBool(filtered)).Inc()
}

func IncCatalogSelection(catalog, state string) {
	if catalogSelections == nil {
		return
	}
	catalogSelections.WithLabelValues(catalog, state).Inc()
}

func IncCalculatorRun(calculator, result string) {
	if calculatorRuns == nil {
		return
	}
	calculatorRuns.WithLabelValues(calculator, result).Inc()
}

// ObserveRender records a PDF or XLSX render.
func ObserveRender(format, result string, duration time.Duration) {
	if renderTotal == nil {
		return
	}
	renderTotal.WithLabelValues(format, result).Inc()
	if result == ResultSuccess {
		renderLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

func IncClientCache(outcome string) {
	if clientCache == nil {
		return
	}
	clientCache.WithLabelValues(outcome).Inc()
}
