package dataset

import (
	"context"
	"io"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/internal/usecase"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/jimlawless/whereami"
	"golang.org/x/sync/errgroup"
)

// Files — имена входных файлов внутри источника.
type Files struct {
	Styles    string
	Images    string
	Features  string
	Filenames string
}

// FileSource читает метаданные и эмбеддинги из файлов, которые открывает DatasetReader.
type FileSource struct {
	reader usecase.DatasetReader
	files  Files
	logger logger.Logger
}

func NewFileSource(reader usecase.DatasetReader, files Files, logger logger.Logger) *FileSource {
	return &FileSource{
		reader: reader,
		files:  files,
		logger: logger,
	}
}

func (s *FileSource) LoadStyles(ctx context.Context) ([]domain.StyleRow, error) {
	var (
		rows  []domain.StyleRow
		stats ParseStats
	)

	err := s.withFile(ctx, s.files.Styles, func(r io.Reader) error {
		var err error
		rows, stats, err = ParseStyles(r)
		return err
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	s.logger.Debugf("%s: %d rows read, %d malformed rows skipped", s.files.Styles, stats.Rows, stats.Skipped)

	return rows, nil
}

func (s *FileSource) LoadImageLinks(ctx context.Context) (map[string]string, error) {
	var (
		links map[string]string
		stats ParseStats
	)

	err := s.withFile(ctx, s.files.Images, func(r io.Reader) error {
		var err error
		links, stats, err = ParseImageLinks(r)
		return err
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	s.logger.Debugf("%s: %d rows read, %d malformed rows skipped", s.files.Images, stats.Rows, stats.Skipped)

	return links, nil
}

// LoadIndex параллельно читает матрицу эмбеддингов и список ссылок и проверяет их согласованность.
func (s *FileSource) LoadIndex(ctx context.Context) (*domain.EmbeddingIndex, error) {
	var (
		vectors [][]float32
		refs    []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.withFile(gctx, s.files.Features, func(r io.Reader) error {
			var err error
			vectors, err = ParseFeatures(r)
			return err
		})
	})

	g.Go(func() error {
		return s.withFile(gctx, s.files.Filenames, func(r io.Reader) error {
			var err error
			refs, err = ParseFilenames(r)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	index, err := domain.NewEmbeddingIndex(refs, vectors)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return index, nil
}

func (s *FileSource) withFile(ctx context.Context, name string, fn func(r io.Reader) error) error {
	rc, err := s.reader.Open(ctx, name)
	if err != nil {
		return e.Wrap(name, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			s.logger.Warnf("close %s: %v", name, cerr)
		}
	}()

	if err := fn(rc); err != nil {
		return e.Wrap(name, err)
	}

	return nil
}
