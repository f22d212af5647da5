package repository

import (
	"context"
	"encoding/json"
	"errors"

	"tradex/internal/entity"
	"tradex/pkg/common"

	"github.com/redis/go-redis/v9"
)

// PriceCache is the materialized latest-price index, one entry per stock
// name. It is refreshed on every ingestion commit and read through on
// cache miss, so latest-price lookups avoid scanning the observation
// history.
type PriceCache interface {
	GetLatest(ctx context.Context, name string) (*entity.Stock, error)
	SetLatest(ctx context.Context, stock *entity.Stock) error
}

// NewPriceCache creates a Redis-backed price cache.
func NewPriceCache(client *redis.Client) PriceCache {
	return &priceCache{client: client}
}

type priceCache struct {
	client *redis.Client
}

func (c *priceCache) GetLatest(ctx context.Context, name string) (*entity.Stock, error) {
	val, err := c.client.Get(ctx, common.RedisKeyLatestPrice+name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var stock entity.Stock
	if err := json.Unmarshal([]byte(val), &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (c *priceCache) SetLatest(ctx context.Context, stock *entity.Stock) error {
	payload, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, common.RedisKeyLatestPrice+stock.Name, payload, 0).Err()
}
