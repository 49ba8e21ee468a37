package product

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for the catalog listing. A miss or a broken
// cache must never fail the request; callers fall back to the repository.
type Cache interface {
	GetProducts() ([]Product, bool)
	SetProducts(products []Product)
}

const (
	cacheKeyProducts = "catalog:products"
	cacheTTL         = 5 * time.Minute
	cacheTimeout     = 2 * time.Second
)

// RedisCache caches the product list in Redis.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *RedisCache) GetProducts() ([]Product, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	raw, err := c.rdb.Get(ctx, cacheKeyProducts).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("warning: product cache read failed: %v", err)
		}
		return nil, false
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *RedisCache) SetProducts(products []Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, cacheKeyProducts, raw, cacheTTL).Err(); err != nil {
		log.Printf("warning: product cache write failed: %v", err)
	}
}
