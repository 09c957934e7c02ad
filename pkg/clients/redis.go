package clients

import (
	"context"
	"strings"

	"github.com/DRSN-tech/go-recommender/internal/cfg"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// RedisClient — подключение к Redis с пространством ключей сервиса.
type RedisClient struct {
	Client *r.Client
	prefix string
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	return &RedisClient{
		Client: client,
		prefix: cfg.KeyPrefix,
	}
}

// Key собирает ключ из частей через ":" с префиксом сервиса.
func (c *RedisClient) Key(parts ...string) string {
	if c.prefix != "" {
		parts = append([]string{c.prefix}, parts...)
	}

	return strings.Join(parts, ":")
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI()+" "+c.Client.Options().Addr, err)
	}

	return nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
