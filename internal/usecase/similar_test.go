package usecase

import (
	"testing"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture строит каталог из ссылок вида "<id>.jpg" и параллельных им векторов.
func fixture(t *testing.T, ids []string, vectors [][]float32) (*domain.Catalog, *domain.EmbeddingIndex) {
	t.Helper()

	refs := make([]string, len(ids))
	rows := make([]domain.StyleRow, len(ids))
	for i, id := range ids {
		refs[i] = id + ".jpg"
		rows[i] = domain.StyleRow{ID: id, Name: "product " + id}
	}

	index, err := domain.NewEmbeddingIndex(refs, vectors)
	require.NoError(t, err)

	return domain.BuildCatalog(rows, nil, index), index
}

func imagePaths(products []domain.Product) []string {
	res := make([]string, len(products))
	for i, p := range products {
		res[i] = p.ImagePath
	}
	return res
}

func TestTopSimilar_TieExcludesQuery(t *testing.T) {
	catalog, index := fixture(t, []string{"1", "2", "3"}, [][]float32{{1, 0}, {1, 0}, {0, 1}})

	got, err := TopSimilar(catalog, index, "1.jpg", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.jpg"}, imagePaths(got))
}

func TestTopSimilar_QueryNotFirstOnTie(t *testing.T) {
	// запрос стоит после равного ему вектора; позиционный срез первой позиции оставил бы запрос в выдаче
	catalog, index := fixture(t, []string{"1", "2", "3"}, [][]float32{{1, 0}, {2, 0}, {0, 1}})

	got, err := TopSimilar(catalog, index, "2.jpg", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.jpg", "3.jpg"}, imagePaths(got))
}

func TestTopSimilar_NeverIncludesQuery(t *testing.T) {
	catalog, index := fixture(t,
		[]string{"1", "2", "3", "4", "5"},
		[][]float32{{1, 0}, {1, 1}, {0, 1}, {1, 0}, {-1, 0}},
	)

	for _, ref := range index.Refs() {
		for k := 0; k <= 6; k++ {
			got, err := TopSimilar(catalog, index, ref, k)
			require.NoError(t, err)
			assert.NotContains(t, imagePaths(got), ref)
			assert.LessOrEqual(t, len(got), k)
		}
	}
}

func TestTopSimilar_SortedDescending(t *testing.T) {
	catalog, index := fixture(t,
		[]string{"1", "2", "3", "4"},
		[][]float32{{1, 0}, {0, 1}, {1, 0}, {1, 1}},
	)

	got, err := TopSimilar(catalog, index, "1.jpg", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// идентичный вектор выше вектора с меньшим сходством
	assert.Equal(t, []string{"3.jpg", "4.jpg", "2.jpg"}, imagePaths(got))
}

func TestTopSimilar_SkipsReferencesMissingFromCatalog(t *testing.T) {
	index, err := domain.NewEmbeddingIndex(
		[]string{"1.jpg", "2.jpg", "3.jpg"},
		[][]float32{{1, 0}, {1, 0.1}, {1, 0.2}},
	)
	require.NoError(t, err)

	catalog := domain.BuildCatalog([]domain.StyleRow{{ID: "1"}, {ID: "3"}}, nil, index)

	got, err := TopSimilar(catalog, index, "1.jpg", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3.jpg"}, imagePaths(got), "2.jpg has no catalog record, result is shorter than k")
}

func TestTopSimilar_Errors(t *testing.T) {
	catalog, index := fixture(t, []string{"1", "2"}, [][]float32{{1, 0}, {0, 1}})

	_, err := TopSimilar(catalog, index, "9.jpg", 1)
	assert.ErrorIs(t, err, e.ErrImageNotIndexed)
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = TopSimilar(catalog, index, "1.jpg", -1)
	assert.ErrorIs(t, err, e.ErrInvalidK)

	got, err := TopSimilar(catalog, index, "1.jpg", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
