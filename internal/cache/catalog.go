package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	KeyStylists = "catalog:stylists"
	KeyServices = "catalog:services"
)

// Catalog is a read-through cache for the stylist and service lists, the
// two hottest reads in the app. Redis being down only costs the cache:
// every miss path falls back to the database.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(addr, password string, ttl time.Duration) *Catalog {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Catalog{rdb: rdb, ttl: ttl}
}

// Get returns the cached payload for key, or false on miss or error.
func (c *Catalog) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("cache get error:", err)
		}
		return nil, false
	}
	return data, true
}

func (c *Catalog) Set(ctx context.Context, key string, payload []byte) {
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

// Invalidate drops keys after an admin mutation.
func (c *Catalog) Invalidate(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache invalidate error:", err)
	}
}
