package usecase

import (
	"context"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

type CatalogUC interface {
	Filter(ctx context.Context, req *FilterReq) (*FilterRes, error)
	FacetOptions(ctx context.Context, sel domain.Selection) (*FacetOptionsRes, error)
	Similar(ctx context.Context, req *SimilarReq) (*SimilarRes, error)
}

type CartUC interface {
	NewSession(ctx context.Context) (string, error)
	Add(ctx context.Context, req *AddToCartReq) (*CartRes, error)
	Remove(ctx context.Context, sessionID string, imageURL string) (*CartRes, error)
	List(ctx context.Context, sessionID string) (*CartRes, error)
}
