package dataset

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapReader map[string]string

func (m mapReader) Open(_ context.Context, name string) (io.ReadCloser, error) {
	body, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

var testFiles = Files{
	Styles:    "styles.csv",
	Images:    "images.csv",
	Features:  "features.csv",
	Filenames: "filenames.txt",
}

func TestFileSource_LoadIndex(t *testing.T) {
	src := NewFileSource(mapReader{
		"features.csv":  "1,0\n0,1\n",
		"filenames.txt": "1.jpg\n2.jpg\n",
	}, testFiles, logger.Nop{})

	index, err := src.LoadIndex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 2, index.Dim())
	pos, ok := index.Position("2.jpg")
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestFileSource_LoadIndexErrors(t *testing.T) {
	tests := []struct {
		name  string
		files mapReader
		want  error
	}{
		{
			name:  "length mismatch",
			files: mapReader{"features.csv": "1,0\n0,1\n", "filenames.txt": "1.jpg\n"},
			want:  e.ErrLengthMismatch,
		},
		{
			name:  "duplicate reference",
			files: mapReader{"features.csv": "1,0\n0,1\n", "filenames.txt": "1.jpg\n1.jpg\n"},
			want:  e.ErrDuplicateReference,
		},
		{
			name:  "missing file",
			files: mapReader{"features.csv": "1,0\n"},
			want:  os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(tt.files, testFiles, logger.Nop{}).LoadIndex(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFileSource_Metadata(t *testing.T) {
	src := NewFileSource(mapReader{
		"styles.csv": stylesCSV,
		"images.csv": "filename,link\n15970.jpg,http://assets/15970.jpg\n",
	}, testFiles, logger.Nop{})

	rows, err := src.LoadStyles(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	links, err := src.LoadImageLinks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://assets/15970.jpg", links["15970.jpg"])
}
