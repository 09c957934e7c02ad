package converter

import (
	"strconv"

	"github.com/DRSN-tech/go-recommender/internal/domain"
)

// StyleColumns — порядок колонок для COPY в таблицу styles. Совпадает с порядком StyleModel.Values.
var StyleColumns = []string{
	"position", "id", "gender", "category", "sub_category", "article_type",
	"base_colour", "season", "usage", "year", "display_name",
}

// ToStyleModel возвращает false для строк без корректного идентификатора.
func ToStyleModel(position int, row domain.StyleRow) (*StyleModel, bool) {
	id, ok := domain.ParseStyleID(row.ID)
	if !ok {
		return nil, false
	}

	return &StyleModel{
		Position:    int32(position),
		ID:          id,
		Gender:      row.Gender,
		Category:    row.Category,
		SubCategory: row.SubCategory,
		ArticleType: row.ArticleType,
		BaseColour:  row.BaseColour,
		Season:      row.Season,
		Usage:       row.Usage,
		Year:        row.Year,
		DisplayName: row.Name,
	}, true
}

func ToStyleRow(model *StyleModel) domain.StyleRow {
	return domain.StyleRow{
		ID:          strconv.FormatInt(model.ID, 10),
		Gender:      model.Gender,
		Category:    model.Category,
		SubCategory: model.SubCategory,
		ArticleType: model.ArticleType,
		BaseColour:  model.BaseColour,
		Season:      model.Season,
		Usage:       model.Usage,
		Year:        model.Year,
		Name:        model.DisplayName,
	}
}

// Values раскладывает модель в порядке StyleColumns.
func (m *StyleModel) Values() []any {
	return []any{
		m.Position, m.ID, m.Gender, m.Category, m.SubCategory, m.ArticleType,
		m.BaseColour, m.Season, m.Usage, m.Year, m.DisplayName,
	}
}
