package domain

import (
	"strconv"
	"strings"
)

// ImageExt — расширение, из которого строится ссылка на изображение товара.
const ImageExt = ".jpg"

// Product описывает товар каталога после объединения с индексом эмбеддингов.
// Пустая строка в любом атрибуте означает отсутствие значения в исходных данных.
type Product struct {
	ID          int64
	Name        string
	Gender      string
	Category    string
	SubCategory string
	ArticleType string
	BaseColour  string
	Season      string
	Usage       string
	Year        string
	ImagePath   string // "<id>.jpg"
	ImageURL    string // пусто, если для ImagePath нет ссылки
}

// StyleRow — сырая строка метаданных товара до нормализации.
type StyleRow struct {
	ID          string
	Gender      string
	Category    string
	SubCategory string
	ArticleType string
	BaseColour  string
	Season      string
	Usage       string
	Year        string
	Name        string
}

// ImagePathFor строит ссылку на изображение по идентификатору товара.
func ImagePathFor(id int64) string {
	return strconv.FormatInt(id, 10) + ImageExt
}

// ParseStyleID приводит сырой идентификатор к int64.
// Допускает запись вида "15970.0", которую дают табличные выгрузки с пропусками.
func ParseStyleID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}

	return int64(f), true
}

// NewProduct нормализует строку метаданных. ok == false, если идентификатор отсутствует или некорректен.
func NewProduct(row StyleRow) (Product, bool) {
	id, ok := ParseStyleID(row.ID)
	if !ok {
		return Product{}, false
	}

	return Product{
		ID:          id,
		Name:        strings.TrimSpace(row.Name),
		Gender:      strings.TrimSpace(row.Gender),
		Category:    strings.TrimSpace(row.Category),
		SubCategory: strings.TrimSpace(row.SubCategory),
		ArticleType: strings.TrimSpace(row.ArticleType),
		BaseColour:  strings.TrimSpace(row.BaseColour),
		Season:      strings.TrimSpace(row.Season),
		Usage:       strings.TrimSpace(row.Usage),
		Year:        strings.TrimSpace(row.Year),
		ImagePath:   ImagePathFor(id),
	}, true
}

// Value возвращает значение атрибута товара для фасета.
func (p *Product) Value(f Facet) string {
	switch f {
	case FacetGender:
		return p.Gender
	case FacetCategory:
		return p.Category
	case FacetSubCategory:
		return p.SubCategory
	case FacetSeason:
		return p.Season
	case FacetUsage:
		return p.Usage
	case FacetColor:
		return p.BaseColour
	default:
		return ""
	}
}
