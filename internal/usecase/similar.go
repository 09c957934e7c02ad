package usecase

import (
	"fmt"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/similarity"
)

// TopSimilar возвращает до k товаров, изображения которых ближе всего к queryRef по косинусному сходству.
//
// Ссылка запроса исключается из результата явно, а не срезом первой позиции, поэтому
// равное сходство у другого изображения не может вытеснить запрос в выдачу.
// Соседи, которых нет в каталоге, пропускаются, и результат может быть короче k.
func TopSimilar(catalog *domain.Catalog, index *domain.EmbeddingIndex, queryRef string, k int) ([]domain.Product, error) {
	if k < 0 {
		return nil, e.ErrInvalidK
	}

	pos, ok := index.Position(queryRef)
	if !ok {
		return nil, fmt.Errorf("%w: %q", e.ErrImageNotIndexed, queryRef)
	}

	if k == 0 {
		return []domain.Product{}, nil
	}

	neighbours := make([]int, 0, k)
	for _, s := range similarity.Rank(index.Vector(pos), index.Vectors()) {
		if len(neighbours) == k {
			break
		}
		if s.Index == pos {
			continue
		}
		neighbours = append(neighbours, s.Index)
	}

	res := make([]domain.Product, 0, len(neighbours))
	for _, n := range neighbours {
		for _, p := range catalog.ByImagePath(index.Ref(n)) {
			if len(res) == k {
				return res, nil
			}
			res = append(res, p)
		}
	}

	return res, nil
}
