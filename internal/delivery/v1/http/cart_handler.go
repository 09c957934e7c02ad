package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxCartRequestSize = 1 << 20

type CartHandler struct {
	cartUsecase usecase.CartUC
	metrics     *Metrics
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, metrics *Metrics, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, metrics: metrics, logger: logger}
}

func (c *CartHandler) newSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := c.cartUsecase.NewSession(r.Context())
	if err != nil {
		c.logger.Errorf(err, "new session")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &SessionResponse{SessionID: sessionID})
}

func (c *CartHandler) list(w http.ResponseWriter, r *http.Request) {
	tr := NewTranslator(r.URL.Query().Get("lang"))

	res, err := c.cartUsecase.List(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		c.logger.Warnf("cart list: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(res, tr))
}

func (c *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	tr := NewTranslator(r.URL.Query().Get("lang"))
	r.Body = http.MaxBytesReader(w, r.Body, maxCartRequestSize)

	var req CartEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.Wrap(err.Error(), e.ErrStatusBadRequest))
		return
	}

	res, err := c.cartUsecase.Add(r.Context(), req.toAddToCartReq(chi.URLParam(r, "sessionID")))
	if err != nil {
		c.logger.Warnf("cart add: %s", err.Error())
		WriteError(w, err)
		return
	}

	c.metrics.CartOperations.WithLabelValues("add").Inc()
	WriteSuccess(w, http.StatusOK, newCartResponse(res, tr))
}

// remove удаляет записи по image_url. Параметр обязателен, но может быть пустым:
// так удаляются записи товаров без изображения.
func (c *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tr := NewTranslator(query.Get("lang"))

	if !query.Has("image_url") {
		WriteError(w, e.ErrImageURLRequired)
		return
	}

	res, err := c.cartUsecase.Remove(r.Context(), chi.URLParam(r, "sessionID"), query.Get("image_url"))
	if err != nil {
		c.logger.Warnf("cart remove: %s", err.Error())
		WriteError(w, err)
		return
	}

	c.metrics.CartOperations.WithLabelValues("remove").Inc()
	WriteSuccess(w, http.StatusOK, newCartResponse(res, tr))
}
