package usecase

import "github.com/DRSN-tech/go-recommender/internal/domain"

// FilterProducts возвращает товары каталога, прошедшие все активные фасеты, в порядке каталога.
func FilterProducts(catalog *domain.Catalog, preds domain.Predicates) []domain.Product {
	res := make([]domain.Product, 0)
	catalog.Each(func(p *domain.Product) bool {
		if preds.Match(p) {
			res = append(res, *p)
		}
		return true
	})

	return res
}

// FacetOptions собирает уникальные значения фасетов в порядке первого появления в каталоге.
// Подкатегории берутся только из товаров выбранных категорий. Зависимые фасеты
// возвращаются, только пока выполнено условие по категориям.
func FacetOptions(catalog *domain.Catalog, sel domain.Selection) map[domain.Facet][]string {
	gating := sel.GatingSatisfied()
	categories := domain.NewValueSet(sel[domain.FacetCategory]...)

	collectors := make(map[domain.Facet]*distinct, len(domain.Facets))
	for _, f := range domain.Facets {
		switch {
		case f == domain.FacetSubCategory && len(categories) == 0:
			continue
		case f.IsGated() && !gating:
			continue
		}
		collectors[f] = newDistinct()
	}

	catalog.Each(func(p *domain.Product) bool {
		for f, c := range collectors {
			if f == domain.FacetSubCategory && !categories.Has(p.Category) {
				continue
			}
			c.add(p.Value(f))
		}
		return true
	})

	res := make(map[domain.Facet][]string, len(collectors))
	for f, c := range collectors {
		res[f] = c.values
	}

	return res
}

// distinct собирает непустые значения без повторов, сохраняя порядок.
type distinct struct {
	seen   map[string]struct{}
	values []string
}

func newDistinct() *distinct {
	return &distinct{
		seen:   make(map[string]struct{}),
		values: make([]string, 0),
	}
}

func (d *distinct) add(v string) {
	if v == "" {
		return
	}
	if _, ok := d.seen[v]; ok {
		return
	}

	d.seen[v] = struct{}{}
	d.values = append(d.values, v)
}
