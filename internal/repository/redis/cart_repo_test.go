package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/pkg/clients"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepo(t *testing.T, ttl time.Duration) (*CartRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := clients.NewRedisClient(&cfg.RedisCfg{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
	})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()))

	return NewCartRepo(client, ttl, logger.Nop{}), mr
}

func entry(url string) domain.CartEntry {
	return domain.CartEntry{ImageURL: url, ProductName: "Shirt " + url, Category: "Apparel", Year: "2012"}
}

func TestCartRepo_AppendList(t *testing.T) {
	repo, mr := setupCartRepo(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", entry("a")))
	require.NoError(t, repo.Append(ctx, "s1", entry("b")))
	require.NoError(t, repo.Append(ctx, "s1", entry("a")))

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, entry("a"), got[2])

	assert.Equal(t, time.Hour, mr.TTL("cart:s1"))

	empty, err := repo.List(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCartRepo_RemoveByImageURL(t *testing.T) {
	repo, mr := setupCartRepo(t, time.Hour)
	ctx := context.Background()

	for _, url := range []string{"a", "b", "a", "c"} {
		require.NoError(t, repo.Append(ctx, "s1", entry(url)))
	}

	removed, err := repo.RemoveByImageURL(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartEntry{entry("b"), entry("c")}, got)

	removed, err = repo.RemoveByImageURL(ctx, "s1", "missing")
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = repo.RemoveByImageURL(ctx, "s1", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	removed, err = repo.RemoveByImageURL(ctx, "s1", "c")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.False(t, mr.Exists("cart:s1"))
}

func TestCartRepo_SessionsIsolated(t *testing.T) {
	repo, _ := setupCartRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", entry("a")))

	got, err := repo.List(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartRepo_SkipsUnreadableEntries(t *testing.T) {
	repo, mr := setupCartRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", entry("a")))
	_, err := mr.RPush("cart:s1", "{not json")
	require.NoError(t, err)

	got, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.CartEntry{entry("a")}, got)
}

func TestCartRepo_RemoveKeepsUnreadableEntries(t *testing.T) {
	repo, mr := setupCartRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", entry("a")))
	_, err := mr.RPush("cart:s1", "{not json")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, "s1", entry("b")))

	removed, err := repo.RemoveByImageURL(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	raw, err := mr.List("cart:s1")
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, "{not json", raw[0])
}

func TestCartRepo_KeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := clients.NewRedisClient(&cfg.RedisCfg{
		Addr:        mr.Addr(),
		DialTimeout: time.Second,
		Timeout:     time.Second,
		KeyPrefix:   "shop",
	})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCartRepo(client, 0, logger.Nop{})
	require.NoError(t, repo.Append(context.Background(), "s1", entry("a")))

	assert.True(t, mr.Exists("shop:cart:s1"))
	assert.False(t, mr.Exists("cart:s1"))
}
