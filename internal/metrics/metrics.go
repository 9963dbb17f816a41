// Package metrics - метрики Prometheus сервиса отметок посещений
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "geo_checkin"

var (
	// HTTP
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// Сценарий посещения
	FixesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "visit",
		Name:      "fixes_total",
		Help:      "Position fixes applied to sessions, by resulting state",
	}, []string{"state"})

	VisitsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "visit",
		Name:      "confirmed_total",
		Help:      "Confirmed visits",
	})

	TransitionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "visit",
		Name:      "transitions_rejected_total",
		Help:      "Workflow actions rejected in the current state",
	}, []string{"action"})

	// Загрузка фото
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upload",
		Name:      "photos_total",
		Help:      "Photo uploads by result",
	}, []string{"result"})

	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "upload",
		Name:      "photo_size_bytes",
		Help:      "Size of stored photos",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 7),
	})

	// Реестр геозон
	RegistryRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "refreshes_total",
		Help:      "Registry refreshes from the spreadsheet, by result",
	}, []string{"result"})

	RegistrySites = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "sites",
		Help:      "Sites currently known to the registry",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "cache_hits_total",
		Help:      "Spreadsheet rows served from redis",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "registry",
		Name:      "cache_misses_total",
		Help:      "Spreadsheet reads that missed redis",
	})
)

// Result - значение метки result
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveRefresh фиксирует результат обновления реестра
func ObserveRefresh(err error, sites int) {
	RegistryRefreshes.WithLabelValues(Result(err)).Inc()
	RegistrySites.Set(float64(sites))
}

// Middleware записывает метрики запросов. Путь берется из шаблона маршрута, чтобы не плодить метки.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler отдает метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
