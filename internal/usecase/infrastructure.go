package usecase

import (
	"context"
	"io"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

// DatasetReader открывает входные файлы набора данных по имени.
type DatasetReader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// CartEventPublisher публикует события изменения корзины.
type CartEventPublisher interface {
	PublishCartEvent(ctx context.Context, event *CartEvent) error
}

// ProductLookup находит товары каталога по ссылке на изображение.
type ProductLookup interface {
	ByImagePath(ref string) []domain.Product
}
