// Package similarity содержит функции сравнения плотных векторов.
package similarity

import (
	"cmp"
	"math"
	"slices"
)

// Scored — позиция вектора и его сходство с запросом.
type Scored struct {
	Index int
	Score float64
}

// Cosine возвращает косинусное сходство a и b.
// Возвращает 0, если норма одного из векторов равна нулю или размерности различаются.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank считает сходство query со всеми векторами и сортирует позиции по убыванию сходства.
// При равном сходстве раньше идёт меньшая позиция.
func Rank(query []float32, vectors [][]float32) []Scored {
	scored := make([]Scored, len(vectors))
	for i, v := range vectors {
		scored[i] = Scored{Index: i, Score: Cosine(query, v)}
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	return scored
}
