package domain

import "slices"

// CartEntry — снимок товара на момент добавления в корзину.
type CartEntry struct {
	ImageURL    string `json:"image_url"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	Year        string `json:"year"`
}

// NewCartEntry копирует поля товара в запись корзины.
func NewCartEntry(p Product) CartEntry {
	return CartEntry{
		ImageURL:    p.ImageURL,
		ProductName: p.Name,
		Category:    p.Category,
		Color:       p.BaseColour,
		Season:      p.Season,
		Usage:       p.Usage,
		Year:        p.Year,
	}
}

// Cart — упорядоченная корзина одной сессии. Дубликаты допускаются.
type Cart struct {
	entries []CartEntry
}

func NewCart(entries []CartEntry) *Cart {
	return &Cart{entries: slices.Clone(entries)}
}

// Add добавляет запись в конец корзины.
func (c *Cart) Add(entry CartEntry) {
	c.entries = append(c.entries, entry)
}

// Remove удаляет все записи с указанным URL изображения и возвращает их количество.
func (c *Cart) Remove(imageURL string) int {
	before := len(c.entries)
	c.entries = slices.DeleteFunc(c.entries, func(entry CartEntry) bool {
		return entry.ImageURL == imageURL
	})

	return before - len(c.entries)
}

// List возвращает копию записей корзины.
func (c *Cart) List() []CartEntry {
	return slices.Clone(c.entries)
}

func (c *Cart) Len() int {
	return len(c.entries)
}
