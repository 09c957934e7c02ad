package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/google/uuid"
)

// CartUseCase управляет корзинами сессий.
type CartUseCase struct {
	repo      CartRepository
	products  ProductLookup
	publisher CartEventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewCartUC(repo CartRepository, products ProductLookup, publisher CartEventPublisher, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// NewSession выдаёт идентификатор новой сессии. Корзина новой сессии пуста.
func (c *CartUseCase) NewSession(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// Add добавляет снимок товара в конец корзины.
func (c *CartUseCase) Add(ctx context.Context, req *AddToCartReq) (*CartRes, error) {
	const op = "CartUseCase.Add"

	if err := validateSession(req.SessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	entry, err := c.resolveEntry(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := c.repo.Append(ctx, req.SessionID, entry); err != nil {
		return nil, e.Wrap(op, err)
	}

	event := NewCartEvent(uuid.NewString(), CartItemAdded, req.SessionID, c.now().UTC())
	event.Entry = &entry
	c.publish(ctx, event)

	return c.List(ctx, req.SessionID)
}

// Remove удаляет из корзины все записи с указанным URL изображения. Отсутствие записей не ошибка.
// Пустой imageURL совпадает с записями товаров без ссылки на изображение.
func (c *CartUseCase) Remove(ctx context.Context, sessionID string, imageURL string) (*CartRes, error) {
	const op = "CartUseCase.Remove"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	removed, err := c.repo.RemoveByImageURL(ctx, sessionID, imageURL)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if removed > 0 {
		event := NewCartEvent(uuid.NewString(), CartItemRemoved, sessionID, c.now().UTC())
		event.ImageURL = imageURL
		event.Removed = removed
		c.publish(ctx, event)
	}

	return c.List(ctx, sessionID)
}

// List возвращает корзину сессии в порядке добавления.
func (c *CartUseCase) List(ctx context.Context, sessionID string) (*CartRes, error) {
	const op = "CartUseCase.List"

	if err := validateSession(sessionID); err != nil {
		return nil, e.Wrap(op, err)
	}

	entries, err := c.repo.List(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartRes(sessionID, entries), nil
}

// resolveEntry строит снимок из товара каталога либо берёт переданный снимок как есть.
func (c *CartUseCase) resolveEntry(req *AddToCartReq) (domain.CartEntry, error) {
	if ref := strings.TrimSpace(req.ImagePath); ref != "" {
		products := c.products.ByImagePath(ref)
		if len(products) == 0 {
			return domain.CartEntry{}, fmt.Errorf("product %q: %w", ref, e.ErrNotFound)
		}
		return domain.NewCartEntry(products[0]), nil
	}

	if req.Entry != nil {
		return *req.Entry, nil
	}

	return domain.CartEntry{}, e.ErrInvalidCartEntry
}

// publish отправляет событие; ошибка публикации не влияет на операцию с корзиной.
func (c *CartUseCase) publish(ctx context.Context, event *CartEvent) {
	if c.publisher == nil {
		return
	}

	if err := c.publisher.PublishCartEvent(ctx, event); err != nil {
		c.logger.Warnf("failed to publish %s for session %s: %v", event.Type, event.SessionID, err)
	}
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return e.ErrSessionRequired
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		return e.ErrInvalidSession
	}

	return nil
}
