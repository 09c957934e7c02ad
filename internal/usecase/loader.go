package usecase

import (
	"context"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Dataset — сырые входные данные до объединения в каталог.
type Dataset struct {
	Styles    []domain.StyleRow
	ImageURLs map[string]string
	Index     *domain.EmbeddingIndex
}

// CatalogLoader загружает входные данные и строит каталог один раз при старте.
type CatalogLoader struct {
	metadata   MetadataSource
	embeddings EmbeddingSource
	logger     logger.Logger
}

func NewCatalogLoader(metadata MetadataSource, embeddings EmbeddingSource, logger logger.Logger) *CatalogLoader {
	return &CatalogLoader{
		metadata:   metadata,
		embeddings: embeddings,
		logger:     logger,
	}
}

// Fetch параллельно читает метаданные, ссылки и индекс. Любая ошибка прерывает загрузку целиком.
func (l *CatalogLoader) Fetch(ctx context.Context) (*Dataset, error) {
	const op = "CatalogLoader.Fetch"

	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		styles, err := l.metadata.LoadStyles(gctx)
		if err != nil {
			return e.Wrap("load styles", err)
		}
		ds.Styles = styles
		return nil
	})

	g.Go(func() error {
		links, err := l.metadata.LoadImageLinks(gctx)
		if err != nil {
			return e.Wrap("load image links", err)
		}
		ds.ImageURLs = links
		return nil
	})

	g.Go(func() error {
		index, err := l.embeddings.LoadIndex(gctx)
		if err != nil {
			return e.Wrap("load embedding index", err)
		}
		ds.Index = index
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ds, nil
}

// Load читает входные данные и объединяет их в каталог.
func (l *CatalogLoader) Load(ctx context.Context) (*domain.Catalog, *domain.EmbeddingIndex, error) {
	const op = "CatalogLoader.Load"

	ds, err := l.Fetch(ctx)
	if err != nil {
		return nil, nil, e.Wrap(op, err)
	}

	catalog := domain.BuildCatalog(ds.Styles, ds.ImageURLs, ds.Index)

	l.logger.Debugf("%s: dropped %d of %d metadata rows without id or embedding", op, len(ds.Styles)-catalog.Len(), len(ds.Styles))
	l.logger.Infof("catalog loaded: %d products, %d embeddings (dim %d), %d image links",
		catalog.Len(), ds.Index.Len(), ds.Index.Dim(), len(ds.ImageURLs))

	if catalog.Len() == 0 {
		l.logger.Warnf("catalog is empty after join, check that metadata ids match embedding references")
	}

	return catalog, ds.Index, nil
}
