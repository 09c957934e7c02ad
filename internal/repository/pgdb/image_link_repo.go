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

// ImageLinkRepo хранит внешние ссылки на изображения в PostgreSQL.
type ImageLinkRepo struct {
	pool *pgxpool.Pool
}

func NewImageLinkRepo(pool *pgxpool.Pool) *ImageLinkRepo {
	return &ImageLinkRepo{pool: pool}
}

// ReplaceAll полностью заменяет содержимое таблицы image_links в транзакции из контекста.
func (i *ImageLinkRepo) ReplaceAll(ctx context.Context, links map[string]string) (int, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM image_links`); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	values := make([][]any, 0, len(links))
	for filename, link := range links {
		values = append(values, []any{filename, link})
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"image_links"}, []string{"filename", "link"}, pgx.CopyFromRows(values))
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return int(n), nil
}

func (i *ImageLinkRepo) LoadImageLinks(ctx context.Context) (map[string]string, error) {
	rows, err := i.pool.Query(ctx, `SELECT filename, link FROM image_links`)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	links := make(map[string]string)
	for rows.Next() {
		var m converter.ImageLinkModel
		if err := rows.Scan(&m.Filename, &m.Link); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		links[m.Filename] = m.Link
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return links, nil
}

// MetadataSource читает метаданные и ссылки, ранее импортированные в PostgreSQL.
type MetadataSource struct {
	styles *StyleRepo
	links  *ImageLinkRepo
}

func NewMetadataSource(styles *StyleRepo, links *ImageLinkRepo) *MetadataSource {
	return &MetadataSource{styles: styles, links: links}
}

func (m *MetadataSource) LoadStyles(ctx context.Context) ([]domain.StyleRow, error) {
	return m.styles.LoadStyles(ctx)
}

func (m *MetadataSource) LoadImageLinks(ctx context.Context) (map[string]string, error) {
	return m.links.LoadImageLinks(ctx)
}
