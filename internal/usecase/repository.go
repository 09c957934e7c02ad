package usecase

import (
	"context"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

// MetadataSource отдаёт сырые метаданные товаров и ссылки на изображения.
type MetadataSource interface {
	LoadStyles(ctx context.Context) ([]domain.StyleRow, error)
	LoadImageLinks(ctx context.Context) (map[string]string, error)
}

// EmbeddingSource отдаёт индекс предвычисленных эмбеддингов.
type EmbeddingSource interface {
	LoadIndex(ctx context.Context) (*domain.EmbeddingIndex, error)
}

// CartRepository хранит корзины сессий.
type CartRepository interface {
	Append(ctx context.Context, sessionID string, entry domain.CartEntry) error
	RemoveByImageURL(ctx context.Context, sessionID string, imageURL string) (int, error)
	List(ctx context.Context, sessionID string) ([]domain.CartEntry, error)
}

// StyleRepository сохраняет метаданные товаров в рамках транзакции из контекста.
type StyleRepository interface {
	ReplaceAll(ctx context.Context, rows []domain.StyleRow) (int, error)
}

// ImageLinkRepository сохраняет ссылки на изображения в рамках транзакции из контекста.
type ImageLinkRepository interface {
	ReplaceAll(ctx context.Context, links map[string]string) (int, error)
}

// EmbeddingRepository сохраняет индекс эмбеддингов во внешнем векторном хранилище.
type EmbeddingRepository interface {
	Upsert(ctx context.Context, index *domain.EmbeddingIndex) error
}
