package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

// CartRepo хранит корзины сессий в памяти процесса. Содержимое теряется при перезапуске.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[string]*domain.Cart)}
}

func (c *CartRepo) Append(_ context.Context, sessionID string, entry domain.CartEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.carts[sessionID]
	if !ok {
		cart = domain.NewCart(nil)
		c.carts[sessionID] = cart
	}
	cart.Add(entry)

	return nil
}

func (c *CartRepo) RemoveByImageURL(_ context.Context, sessionID string, imageURL string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.carts[sessionID]
	if !ok {
		return 0, nil
	}

	removed := cart.Remove(imageURL)
	if cart.Len() == 0 {
		delete(c.carts, sessionID)
	}

	return removed, nil
}

func (c *CartRepo) List(_ context.Context, sessionID string) ([]domain.CartEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cart, ok := c.carts[sessionID]
	if !ok {
		return []domain.CartEntry{}, nil
	}

	return cart.List(), nil
}
