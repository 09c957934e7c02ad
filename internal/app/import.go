package app

import (
	"context"

	config "github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/internal/repository/pgdb"
	qdrantRepo "github.com/DRSN-tech/go-recommender/internal/repository/qdrant"
	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/clients"
	"github.com/DRSN-tech/go-recommender/pkg/closer"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/jimlawless/whereami"
)

// RunImport переносит файловый набор данных в PostgreSQL и, если задан QDRANT_HOST, в Qdrant.
// Источник файлов тот же, что и при обслуживании: локальный каталог или бакет MinIO.
func RunImport(ctx context.Context, cfg *config.Config, log logger.Logger) (*usecase.ImportRes, error) {
	if cfg.Db == nil {
		return nil, e.Wrap("import requires POSTGRES_DB", e.ErrSourceNotConfigured)
	}

	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	defer a.close()

	files, err := a.initFileSource(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := a.initPGDB(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var embeddingRepo usecase.EmbeddingRepository
	if cfg.Qdrant != nil {
		qc, err := a.initQdrant()
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		embeddingRepo = &collectionUpserter{
			client: qc,
			repo:   qdrantRepo.NewEmbeddingRepo(qc.Client, cfg.Qdrant, log),
		}
	}

	importUC := usecase.NewImportUC(
		usecase.NewCatalogLoader(files, files, log),
		pgdb.NewStyleRepo(db.Pool),
		pgdb.NewImageLinkRepo(db.Pool),
		embeddingRepo,
		db.Pool,
		log,
	)

	res, err := importUC.Import(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	log.Infof("import finished: %d styles, %d image links, %d embeddings", res.Styles, res.Links, res.Embeddings)
	return res, nil
}

// collectionUpserter создаёт коллекцию под размерность индекса перед первой записью.
type collectionUpserter struct {
	client *clients.QdrantClient
	repo   *qdrantRepo.EmbeddingRepo
}

func (c *collectionUpserter) Upsert(ctx context.Context, index *domain.EmbeddingIndex) error {
	if err := clients.EnsureCollection(ctx, c.client, uint64(index.Dim())); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return c.repo.Upsert(ctx, index)
}
