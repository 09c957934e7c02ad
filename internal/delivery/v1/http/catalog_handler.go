package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	metrics        *Metrics
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, metrics *Metrics, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, metrics: metrics, logger: logger}
}

// facets возвращает значения фасетов, доступные при текущем выборе.
func (c *CatalogHandler) facets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tr := NewTranslator(query.Get("lang"))

	res, err := c.catalogUsecase.FacetOptions(r.Context(), parseSelection(query, tr))
	if err != nil {
		c.logger.Errorf(err, "facet options")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newFacetsResponse(res, tr))
}

// products возвращает голову отфильтрованной витрины.
func (c *CatalogHandler) products(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tr := NewTranslator(query.Get("lang"))

	limit, err := parseIntQuery(query, "limit", e.ErrInvalidLimit)
	if err != nil {
		c.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	res, err := c.catalogUsecase.Filter(r.Context(), usecase.NewFilterReq(parseSelection(query, tr), limit))
	if err != nil {
		c.logger.Warnf("filter: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &ProductListResponse{
		Total: res.Total,
		Items: newProductResponses(res.Products, tr),
	})
}

// similar возвращает товары, визуально похожие на выбранное изображение.
func (c *CatalogHandler) similar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tr := NewTranslator(query.Get("lang"))

	imagePath, err := url.PathUnescape(chi.URLParam(r, "imagePath"))
	if err != nil {
		WriteError(w, e.Wrap(err.Error(), e.ErrStatusBadRequest))
		return
	}

	k, err := parseIntQuery(query, "k", e.ErrInvalidK)
	if err != nil {
		c.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	start := time.Now()
	res, err := c.catalogUsecase.Similar(r.Context(), usecase.NewSimilarReq(imagePath, k))
	if err != nil {
		c.logger.Warnf("similar %s: %s", imagePath, err.Error())
		WriteError(w, err)
		return
	}

	c.metrics.SimilarDuration.Observe(time.Since(start).Seconds())
	c.metrics.SimilarResultSize.Observe(float64(len(res.Products)))

	WriteSuccess(w, http.StatusOK, &SimilarResponse{
		ImagePath: res.ImagePath,
		Items:     newProductResponses(res.Products, tr),
	})
}
