package usecase

import (
	"context"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
)

// CatalogUseCase отвечает за фильтрацию витрины и подбор похожих товаров.
// Каталог и индекс не изменяются после создания и разделяются между запросами.
type CatalogUseCase struct {
	catalog  *domain.Catalog
	index    *domain.EmbeddingIndex
	pageSize int
	defaultK int
	logger   logger.Logger
}

func NewCatalogUC(
	catalog *domain.Catalog,
	index *domain.EmbeddingIndex,
	pageSize int,
	defaultK int,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		catalog:  catalog,
		index:    index,
		pageSize: pageSize,
		defaultK: defaultK,
		logger:   logger,
	}
}

// Filter применяет активные фасеты выбора и возвращает голову витрины фиксированного размера.
// limit = 0 даёт пустую голову при корректном Total.
func (c *CatalogUseCase) Filter(_ context.Context, req *FilterReq) (*FilterRes, error) {
	const op = "CatalogUseCase.Filter"

	limit := c.pageSize
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit < 0 {
		return nil, e.Wrap(op, e.ErrInvalidLimit)
	}

	products := FilterProducts(c.catalog, domain.ActivePredicates(req.Selection))
	total := len(products)
	if len(products) > limit {
		products = products[:limit]
	}

	return NewFilterRes(products, total), nil
}

// FacetOptions возвращает значения фасетов, доступные при текущем выборе.
func (c *CatalogUseCase) FacetOptions(_ context.Context, sel domain.Selection) (*FacetOptionsRes, error) {
	return &FacetOptionsRes{
		Options:      FacetOptions(c.catalog, sel),
		GatingActive: sel.GatingSatisfied(),
	}, nil
}

// Similar возвращает товары, визуально похожие на выбранный.
func (c *CatalogUseCase) Similar(_ context.Context, req *SimilarReq) (*SimilarRes, error) {
	const op = "CatalogUseCase.Similar"

	k := c.defaultK
	if req.K != nil {
		k = *req.K
	}

	products, err := TopSimilar(c.catalog, c.index, req.ImagePath, k)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Debugf("%s: %s -> %d neighbours", op, req.ImagePath, len(products))
	return NewSimilarRes(req.ImagePath, products), nil
}
