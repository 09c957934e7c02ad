package domain

import "slices"

// ReferenceSet — множество ссылок на изображения, для которых есть эмбеддинг.
type ReferenceSet interface {
	Contains(ref string) bool
}

// Catalog — неизменяемый набор товаров, у каждого из которых есть эмбеддинг изображения.
type Catalog struct {
	products    []Product
	byImagePath map[string][]int
}

// BuildCatalog объединяет метаданные, ссылки на изображения и индекс эмбеддингов.
// Строки без корректного идентификатора и товары без эмбеддинга отбрасываются.
// Порядок оставшихся товаров совпадает с порядком входных строк.
func BuildCatalog(rows []StyleRow, imageURLs map[string]string, refs ReferenceSet) *Catalog {
	c := &Catalog{
		products:    make([]Product, 0, len(rows)),
		byImagePath: make(map[string][]int),
	}

	for _, row := range rows {
		product, ok := NewProduct(row)
		if !ok {
			continue
		}

		if !refs.Contains(product.ImagePath) {
			continue
		}

		product.ImageURL = imageURLs[product.ImagePath]

		c.byImagePath[product.ImagePath] = append(c.byImagePath[product.ImagePath], len(c.products))
		c.products = append(c.products, product)
	}

	return c
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Products возвращает копию списка товаров в порядке каталога.
func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// ByImagePath возвращает товары с указанной ссылкой на изображение в порядке каталога.
func (c *Catalog) ByImagePath(ref string) []Product {
	positions := c.byImagePath[ref]
	if len(positions) == 0 {
		return nil
	}

	res := make([]Product, 0, len(positions))
	for _, pos := range positions {
		res = append(res, c.products[pos])
	}

	return res
}

// Each обходит товары каталога по порядку, пока fn возвращает true.
func (c *Catalog) Each(fn func(p *Product) bool) {
	for i := range c.products {
		if !fn(&c.products[i]) {
			return
		}
	}
}
