package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/jimlawless/whereami"
)

// DirReader открывает файлы набора данных из локального каталога.
type DirReader struct {
	dir string
}

func NewDirReader(dir string) *DirReader {
	return &DirReader{dir: dir}
}

func (d *DirReader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(d.dir, filepath.Clean(name)))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return f, nil
}
