package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
	"github.com/restaurantes/restaurant-api/internal/core/ports"
	"github.com/restaurantes/restaurant-api/internal/pkg/metrics"
)

const defaultCacheTTL = 5 * time.Minute

// ErrCacheMiss is returned by Cache.Get when the key does not exist.
var ErrCacheMiss = redis.Nil

// Cache is the subset of Redis the restaurant cache needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Client adapts *redis.Client to Cache.
type Client struct {
	rdb *redis.Client
}

func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// CachedRestaurantRepository is a read-through cache over another
// RestaurantRepository. FindByID is served from the cache; writes go to the
// underlying store first and then refresh or evict the cached entry.
// Cache failures are logged and never fail the request.
// Key format: restaurant:<id>
type CachedRestaurantRepository struct {
	next  ports.RestaurantRepository
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedRestaurantRepository(next ports.RestaurantRepository, cache Cache, ttl time.Duration, log zerolog.Logger) *CachedRestaurantRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedRestaurantRepository{next: next, cache: cache, ttl: ttl, log: log}
}

// List is not cached.
func (r *CachedRestaurantRepository) List(ctx context.Context) ([]*domain.Restaurant, error) {
	return r.next.List(ctx)
}

func (r *CachedRestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	key := r.key(id)

	val, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var rest domain.Restaurant
		if jerr := json.Unmarshal([]byte(val), &rest); jerr == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return &rest, nil
		}
		r.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		r.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
	}

	rest, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, rest)
	return rest, nil
}

func (r *CachedRestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	if err := r.next.Create(ctx, rest); err != nil {
		return err
	}
	r.store(ctx, rest)
	return nil
}

func (r *CachedRestaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	if err := r.next.Update(ctx, rest); err != nil {
		return err
	}
	r.evict(ctx, rest.ID)
	return nil
}

func (r *CachedRestaurantRepository) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedRestaurantRepository) store(ctx context.Context, rest *domain.Restaurant) {
	b, err := json.Marshal(rest)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.key(rest.ID), string(b), r.ttl); err != nil {
		r.log.Warn().Err(err).Int64("restaurant_id", rest.ID).Msg("cache set failed")
	}
}

func (r *CachedRestaurantRepository) evict(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, r.key(id)); err != nil {
		r.log.Warn().Err(err).Int64("restaurant_id", id).Msg("cache delete failed")
	}
}

func (r *CachedRestaurantRepository) key(id int64) string {
	return fmt.Sprintf("restaurant:%d", id)
}
