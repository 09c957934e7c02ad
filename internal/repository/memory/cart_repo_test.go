package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepo(t *testing.T) {
	repo := NewCartRepo()
	ctx := context.Background()

	a := domain.CartEntry{ImageURL: "a", ProductName: "A"}
	b := domain.CartEntry{ImageURL: "b", ProductName: "B"}

	require.NoError(t, repo.Append(ctx, "s1", a))
	require.NoError(t, repo.Append(ctx, "s1", b))
	require.NoError(t, repo.Append(ctx, "s1", a))

	removed, err := repo.RemoveByImageURL(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartEntry{b}, got)

	other, err := repo.List(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)

	removed, err = repo.RemoveByImageURL(ctx, "s2", "a")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCartRepo_Concurrent(t *testing.T) {
	repo := NewCartRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, "s1", domain.CartEntry{ImageURL: fmt.Sprintf("%d", i%5)})
		}(i)
	}
	wg.Wait()

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
