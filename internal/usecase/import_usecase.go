package usecase

import (
	"context"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/DRSN-tech/go-recommender/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// ImportUseCase переносит файловый набор данных в PostgreSQL и, если настроено, в Qdrant.
type ImportUseCase struct {
	loader        *CatalogLoader
	styleRepo     StyleRepository
	linkRepo      ImageLinkRepository
	embeddingRepo EmbeddingRepository // nil, если векторное хранилище не настроено
	dbPool        transaction.Transactional
	logger        logger.Logger
}

func NewImportUC(
	loader *CatalogLoader,
	styleRepo StyleRepository,
	linkRepo ImageLinkRepository,
	embeddingRepo EmbeddingRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		loader:        loader,
		styleRepo:     styleRepo,
		linkRepo:      linkRepo,
		embeddingRepo: embeddingRepo,
		dbPool:        dbPool,
		logger:        logger,
	}
}

// Import читает набор данных, атомарно заменяет метаданные и ссылки в БД и загружает эмбеддинги.
// Строки без корректного идентификатора не сохраняются.
func (i *ImportUseCase) Import(ctx context.Context) (res *ImportRes, err error) {
	const op = "ImportUseCase.Import"

	ds, err := i.loader.Fetch(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rows := validStyleRows(ds.Styles)
	i.logger.Infof("%s: %d of %d metadata rows have a valid id", op, len(rows), len(ds.Styles))

	txCtx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			if rbErr := tx.Rollback(txCtx); rbErr != nil {
				i.logger.Warnf("%s: rollback failed: %v", op, rbErr)
			}
		}
	}()
	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		err = e.ErrTransactionNotFound
		return nil, e.Wrap(op, err)
	}
	txCtx = tr.WithTx(txCtx, pgxTx)

	res = &ImportRes{}
	if res.Styles, err = i.styleRepo.ReplaceAll(txCtx, rows); err != nil {
		return nil, e.Wrap(op, err)
	}

	if res.Links, err = i.linkRepo.ReplaceAll(txCtx, ds.ImageURLs); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(txCtx); err != nil {
		return nil, e.Wrap(op, err)
	}

	if i.embeddingRepo == nil {
		i.logger.Infof("%s: vector store is not configured, skipping embeddings", op)
		return res, nil
	}

	if err = i.embeddingRepo.Upsert(ctx, ds.Index); err != nil {
		return nil, e.Wrap(op, err)
	}
	res.Embeddings = ds.Index.Len()

	return res, nil
}

func validStyleRows(rows []domain.StyleRow) []domain.StyleRow {
	res := make([]domain.StyleRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := domain.ParseStyleID(row.ID); ok {
			res = append(res, row)
		}
	}

	return res
}
