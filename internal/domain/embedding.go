package domain

import (
	"fmt"
	"slices"

	"github.com/DRSN-tech/go-recommender/pkg/e"
)

// EmbeddingIndex хранит предвычисленные векторы изображений и параллельный им список ссылок.
// Позиция i в Refs соответствует позиции i в векторах. После создания индекс не изменяется.
type EmbeddingIndex struct {
	refs      []string
	vectors   [][]float32
	positions map[string]int
	dim       int
}

// NewEmbeddingIndex проверяет согласованность входных данных и строит отображение ссылка -> позиция.
// Несовпадение длин, разная размерность векторов и повторяющиеся ссылки — фатальные ошибки загрузки.
func NewEmbeddingIndex(refs []string, vectors [][]float32) (*EmbeddingIndex, error) {
	if len(refs) != len(vectors) {
		return nil, fmt.Errorf("%w: %d references, %d vectors", e.ErrLengthMismatch, len(refs), len(vectors))
	}

	idx := &EmbeddingIndex{
		refs:      refs,
		vectors:   vectors,
		positions: make(map[string]int, len(refs)),
	}

	for i, ref := range refs {
		if prev, ok := idx.positions[ref]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", e.ErrDuplicateReference, ref, prev, i)
		}
		idx.positions[ref] = i

		if i == 0 {
			idx.dim = len(vectors[i])
			continue
		}
		if len(vectors[i]) != idx.dim {
			return nil, fmt.Errorf("%w: %q has %d, want %d", e.ErrDimensionMismatch, ref, len(vectors[i]), idx.dim)
		}
	}

	return idx, nil
}

func (idx *EmbeddingIndex) Len() int {
	return len(idx.refs)
}

// Dim возвращает размерность векторов (0 для пустого индекса).
func (idx *EmbeddingIndex) Dim() int {
	return idx.dim
}

// Position возвращает позицию ссылки в индексе.
func (idx *EmbeddingIndex) Position(ref string) (int, bool) {
	pos, ok := idx.positions[ref]
	return pos, ok
}

func (idx *EmbeddingIndex) Contains(ref string) bool {
	_, ok := idx.positions[ref]
	return ok
}

func (idx *EmbeddingIndex) Ref(pos int) string {
	return idx.refs[pos]
}

func (idx *EmbeddingIndex) Vector(pos int) []float32 {
	return idx.vectors[pos]
}

// Vectors возвращает векторы индекса без копирования. Вызывающий код не должен их изменять.
func (idx *EmbeddingIndex) Vectors() [][]float32 {
	return idx.vectors
}

func (idx *EmbeddingIndex) Refs() []string {
	return slices.Clone(idx.refs)
}
