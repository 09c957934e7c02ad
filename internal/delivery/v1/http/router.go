package http

import (
	"net/http"

	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router   *chi.Mux
	logger   logger.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

func NewRouter(router *chi.Mux, logger logger.Logger, metrics *Metrics, gatherer prometheus.Gatherer) *Router {
	return &Router{router: router, logger: logger, metrics: metrics, gatherer: gatherer}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC) {
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.metrics.instrument)

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCatalogRoutes(v1, NewCatalogHandler(catalogUC, r.metrics, r.logger))
		registerCartRoutes(v1, NewCartHandler(cartUC, r.metrics, r.logger))
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/facets", h.facets)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.products)
		pr.Get("/{imagePath}/similar", h.similar)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/sessions", func(s chi.Router) {
		s.Post("/", h.newSession)
		s.Route("/{sessionID}/cart", func(c chi.Router) {
			c.Get("/", h.list)
			c.Post("/", h.add)
			c.Delete("/", h.remove)
		})
	})
}
