package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — метрики HTTP-слоя и поиска похожих товаров.
type Metrics struct {
	RequestDuration   *prometheus.HistogramVec
	SimilarDuration   prometheus.Histogram
	SimilarResultSize prometheus.Histogram
	CartOperations    *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в reg. В тестах передаётся отдельный prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recommender_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		SimilarDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "recommender_similar_query_duration_seconds",
			Help:    "Duration of brute-force similarity queries",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		SimilarResultSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "recommender_similar_result_size",
			Help:    "Number of similar products returned per query",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		}),
		CartOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommender_cart_operations_total",
			Help: "Cart operations by kind",
		}, []string{"op"}),
	}
}

// instrument пишет длительность запроса с шаблоном маршрута chi, чтобы не плодить метки по id.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
