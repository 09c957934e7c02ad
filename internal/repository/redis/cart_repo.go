package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DRSN-tech/go-recommender/internal/domain"
	"github.com/DRSN-tech/go-recommender/internal/repository/redis/converter"
	"github.com/DRSN-tech/go-recommender/pkg/clients"
	"github.com/DRSN-tech/go-recommender/pkg/e"
	"github.com/DRSN-tech/go-recommender/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// maxTxRetries — число попыток удаления при конкурентном изменении корзины.
const maxTxRetries = 5

// CartRepo хранит корзину сессии списком JSON-записей под ключом [<prefix>:]cart:<session>.
// Каждое изменение продлевает TTL ключа.
type CartRepo struct {
	client *clients.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCartRepo(client *clients.RedisClient, ttl time.Duration, logger logger.Logger) *CartRepo {
	return &CartRepo{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Append добавляет запись в конец корзины.
func (c *CartRepo) Append(ctx context.Context, sessionID string, entry domain.CartEntry) error {
	data, err := marshalEntry(entry)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	key := c.cartKey(sessionID)
	_, err = c.client.Client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		c.expire(ctx, pipe, key)
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// RemoveByImageURL удаляет все записи с данной ссылкой. Список переписывается под WATCH,
// чтобы параллельное добавление не потерялось.
func (c *CartRepo) RemoveByImageURL(ctx context.Context, sessionID string, imageURL string) (int, error) {
	key := c.cartKey(sessionID)

	var removed int
	txf := func(tx *r.Tx) error {
		values, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}

		kept := make([]any, 0, len(values))
		removed = 0
		for _, v := range values {
			entry, err := unmarshalEntry(v)
			if err != nil {
				c.logger.Warnf("cart %s: keeping unreadable entry: %v", sessionID, err)
				kept = append(kept, v)
				continue
			}
			if entry.ImageURL == imageURL {
				removed++
				continue
			}
			kept = append(kept, v)
		}

		if removed == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe r.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(kept) > 0 {
				pipe.RPush(ctx, key, kept...)
				c.expire(ctx, pipe, key)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := c.client.Client.Watch(ctx, txf, key)
		if err == nil {
			return removed, nil
		}
		if errors.Is(err, r.TxFailedErr) {
			c.logger.Debugf("cart %s changed concurrently, retrying remove", sessionID)
			continue
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return 0, e.Wrap(whereami.WhereAmI(), r.TxFailedErr)
}

// List возвращает записи корзины в порядке добавления. Нечитаемые записи пропускаются с предупреждением.
func (c *CartRepo) List(ctx context.Context, sessionID string) ([]domain.CartEntry, error) {
	values, err := c.client.Client.LRange(ctx, c.cartKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.CartEntry, 0, len(values))
	for _, v := range values {
		entry, err := unmarshalEntry(v)
		if err != nil {
			c.logger.Warnf("cart %s: unreadable entry: %v", sessionID, e.Wrap(whereami.WhereAmI(), err))
			continue
		}
		result = append(result, entry)
	}

	return result, nil
}

func (c *CartRepo) expire(ctx context.Context, pipe r.Pipeliner, key string) {
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
}

func marshalEntry(entry domain.CartEntry) ([]byte, error) {
	return json.Marshal(converter.ToRedisModel(entry))
}

func unmarshalEntry(data string) (domain.CartEntry, error) {
	var model converter.CartEntryRedisModel
	if err := json.Unmarshal([]byte(data), &model); err != nil {
		return domain.CartEntry{}, err
	}

	return converter.ToEntity(model), nil
}

// cartKey возвращает Redis-ключ корзины сессии: [<prefix>:]cart:<session>
func (c *CartRepo) cartKey(sessionID string) string {
	return c.client.Key("cart", sessionID)
}
