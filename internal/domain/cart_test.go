package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddThenList(t *testing.T) {
	cart := NewCart(nil)
	entry := CartEntry{ImageURL: "x.jpg", ProductName: "Shirt", Category: "Apparel"}

	cart.Add(CartEntry{ImageURL: "y.jpg"})
	cart.Add(entry)

	list := cart.List()
	require.Len(t, list, 2)
	assert.Equal(t, entry, list[len(list)-1])
}

func TestCart_RemoveDeletesAllMatches(t *testing.T) {
	cart := NewCart(nil)
	cart.Add(CartEntry{ImageURL: "x.jpg", ProductName: "Shirt"})
	cart.Add(CartEntry{ImageURL: "y.jpg"})
	cart.Add(CartEntry{ImageURL: "x.jpg", ProductName: "Shirt"})

	assert.Equal(t, 2, cart.Remove("x.jpg"))
	assert.Equal(t, []CartEntry{{ImageURL: "y.jpg"}}, cart.List())

	assert.Equal(t, 0, cart.Remove("missing.jpg"))
	assert.Equal(t, 1, cart.Len())
}

func TestCart_AddRemoveScenario(t *testing.T) {
	cart := NewCart(nil)
	cart.Add(CartEntry{ImageURL: "x.jpg", ProductName: "Shirt", Category: "Apparel"})
	cart.Remove("x.jpg")

	assert.Empty(t, cart.List())
}

func TestNewCartEntry_IsSnapshot(t *testing.T) {
	product := Product{Name: "Shirt", Category: "Apparel", BaseColour: "Blue", ImageURL: "u", Year: "2012"}
	entry := NewCartEntry(product)

	product.Name = "Renamed"
	product.BaseColour = "Red"

	assert.Equal(t, "Shirt", entry.ProductName)
	assert.Equal(t, "Blue", entry.Color)
	assert.Equal(t, "2012", entry.Year)
}

func TestCart_ListIsCopy(t *testing.T) {
	cart := NewCart([]CartEntry{{ImageURL: "x.jpg"}})
	list := cart.List()
	list[0].ImageURL = "changed"

	assert.Equal(t, "x.jpg", cart.List()[0].ImageURL)
}
