package usecase

import (
	"time"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

// CATALOG USECASE

// FilterReq — запрос отфильтрованной витрины.
type FilterReq struct {
	Selection domain.Selection
	Limit     *int // nil — размер страницы по умолчанию
}

// FilterRes — голова отфильтрованной витрины и общее число подходящих товаров.
type FilterRes struct {
	Products []domain.Product
	Total    int
}

// FacetOptionsRes — доступные значения фасетов для текущего выбора.
type FacetOptionsRes struct {
	Options      map[domain.Facet][]string
	GatingActive bool
}

// SimilarReq — запрос похожих товаров для выбранного изображения.
type SimilarReq struct {
	ImagePath string
	K         *int // nil — значение по умолчанию
}

// SimilarRes — похожие товары по убыванию сходства.
type SimilarRes struct {
	ImagePath string
	Products  []domain.Product
}

// CART USECASE

// AddToCartReq — добавление в корзину. Товар задаётся ссылкой на изображение
// либо готовым снимком полей.
type AddToCartReq struct {
	SessionID string
	ImagePath string
	Entry     *domain.CartEntry
}

// CartRes — содержимое корзины сессии.
type CartRes struct {
	SessionID string
	Entries   []domain.CartEntry
}

type CartEventType string

const (
	CartItemAdded   CartEventType = "cart.item_added"
	CartItemRemoved CartEventType = "cart.item_removed"
)

// CartEvent — событие изменения корзины для внешних потребителей.
type CartEvent struct {
	EventID    string            `json:"event_id"`
	Type       CartEventType     `json:"type"`
	SessionID  string            `json:"session_id"`
	Entry      *domain.CartEntry `json:"entry,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Removed    int               `json:"removed,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// IMPORT USECASE

// ImportRes — итог переноса набора данных во внешние хранилища.
type ImportRes struct {
	Styles     int
	Links      int
	Embeddings int
}

// MAPPERS

func NewFilterReq(sel domain.Selection, limit *int) *FilterReq {
	return &FilterReq{
		Selection: sel,
		Limit:     limit,
	}
}

func NewFilterRes(products []domain.Product, total int) *FilterRes {
	return &FilterRes{
		Products: products,
		Total:    total,
	}
}

func NewSimilarReq(imagePath string, k *int) *SimilarReq {
	return &SimilarReq{
		ImagePath: imagePath,
		K:         k,
	}
}

func NewSimilarRes(imagePath string, products []domain.Product) *SimilarRes {
	return &SimilarRes{
		ImagePath: imagePath,
		Products:  products,
	}
}

func NewAddToCartReq(sessionID string, imagePath string, entry *domain.CartEntry) *AddToCartReq {
	return &AddToCartReq{
		SessionID: sessionID,
		ImagePath: imagePath,
		Entry:     entry,
	}
}

func NewCartRes(sessionID string, entries []domain.CartEntry) *CartRes {
	if entries == nil {
		entries = []domain.CartEntry{}
	}

	return &CartRes{
		SessionID: sessionID,
		Entries:   entries,
	}
}

func NewCartEvent(eventID string, eventType CartEventType, sessionID string, occurredAt time.Time) *CartEvent {
	return &CartEvent{
		EventID:    eventID,
		Type:       eventType,
		SessionID:  sessionID,
		OccurredAt: occurredAt,
	}
}
