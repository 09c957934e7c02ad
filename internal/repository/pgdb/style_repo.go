package pgdb

import (
	"context"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// StyleRepo реализует хранилище метаданных товаров поверх PostgreSQL.
type StyleRepo struct {
	pool *pgxpool.Pool
}

func NewStyleRepo(pool *pgxpool.Pool) *StyleRepo {
	return &StyleRepo{pool: pool}
}

// ReplaceAll полностью заменяет содержимое таблицы styles. Порядок строк сохраняется в колонке position.
// Работает только внутри транзакции из контекста.
func (s *StyleRepo) ReplaceAll(ctx context.Context, rows []domain.StyleRow) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM styles`); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	values := make([][]any, 0, len(rows))
	for i, row := range rows {
		model, ok := converter.ToStyleModel(i, row)
		if !ok {
			continue
		}
		values = append(values, model.Values())
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"styles"}, converter.StyleColumns, pgx.CopyFromRows(values))
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return int(n), nil
}

// LoadStyles возвращает строки метаданных в порядке импорта.
func (s *StyleRepo) LoadStyles(ctx context.Context) ([]domain.StyleRow, error) {
	query := `
		SELECT position, id, gender, category, sub_category, article_type,
		       base_colour, season, usage, year, display_name
		FROM styles
		ORDER BY position
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.StyleRow, 0)
	for rows.Next() {
		var m converter.StyleModel
		if err := rows.Scan(
			&m.Position, &m.ID, &m.Gender, &m.Category, &m.SubCategory, &m.ArticleType,
			&m.BaseColour, &m.Season, &m.Usage, &m.Year, &m.DisplayName,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, converter.ToStyleRow(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
