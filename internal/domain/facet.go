package domain

import "strings"

// Facet — атрибут товара, по которому фильтруется каталог.
type Facet string

const (
	FacetGender      Facet = "gender"
	FacetCategory    Facet = "category"
	FacetSubCategory Facet = "subCategory"
	FacetSeason      Facet = "season"
	FacetUsage       Facet = "usage"
	FacetColor       Facet = "color"
)

// Facets перечисляет фасеты в порядке отображения.
var Facets = []Facet{FacetGender, FacetCategory, FacetSubCategory, FacetSeason, FacetUsage, FacetColor}

// GatingCategories — категории, при выборе которых доступны фильтры сезона, назначения и цвета.
var GatingCategories = []string{"Apparel", "Accessories", "Footwear"}

// gatedFacets активны только при выполнении условия по категориям.
var gatedFacets = map[Facet]struct{}{
	FacetSeason: {},
	FacetUsage:  {},
	FacetColor:  {},
}

// ParseFacet возвращает фасет по имени из запроса.
func ParseFacet(name string) (Facet, bool) {
	for _, f := range Facets {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}

	return "", false
}

// IsGated сообщает, зависит ли активность фасета от выбранных категорий.
func (f Facet) IsGated() bool {
	_, ok := gatedFacets[f]
	return ok
}

// Selection — текущий выбор пользователя: сырые значения по каждому фасету.
type Selection map[Facet][]string

// ValueSet — множество допустимых значений одного фасета.
type ValueSet map[string]struct{}

func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

func (s ValueSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Predicates — набор активных фасетов. Отсутствующий или пустой фасет не ограничивает выборку.
type Predicates map[Facet]ValueSet

// GatingSatisfied сообщает, выбрана ли хотя бы одна категория, открывающая зависимые фильтры.
func (s Selection) GatingSatisfied() bool {
	for _, c := range s[FacetCategory] {
		for _, g := range GatingCategories {
			if c == g {
				return true
			}
		}
	}

	return false
}

// ActivePredicates решает, какие фасеты выбора действуют. Зависимые фасеты
// игнорируются, пока условие по категориям не выполнено, даже если в выборе остались значения.
// Пустые значения отбрасываются.
func ActivePredicates(sel Selection) Predicates {
	gating := sel.GatingSatisfied()
	preds := make(Predicates, len(sel))

	for _, f := range Facets {
		if f.IsGated() && !gating {
			continue
		}

		set := make(ValueSet, len(sel[f]))
		for _, v := range sel[f] {
			if v = strings.TrimSpace(v); v != "" {
				set[v] = struct{}{}
			}
		}

		if len(set) > 0 {
			preds[f] = set
		}
	}

	return preds
}

// Match проверяет, проходит ли товар все непустые фасеты.
// Товар без значения атрибута не проходит непустой фасет.
func (p Predicates) Match(product *Product) bool {
	for f, set := range p {
		if len(set) == 0 {
			continue
		}
		if !set.Has(product.Value(f)) {
			return false
		}
	}

	return true
}
