package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

const keyPrefix = "checkops:recommendations:"

// Options configures the Redis connection.
type Options struct {
	Address  string
	Password string
	DB       int
}

// Cache stores personal recommendations as JSON values keyed by user id.
type Cache struct {
	client *goredis.Client
}

var _ screening.RecommendationCache = (*Cache)(nil)

func New(opts Options) *Cache {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &Cache{client: rdb}
}

// NewWithClient wraps an existing client.
func NewWithClient(c *goredis.Client) *Cache {
	return &Cache{client: c}
}

func key(userID string) string { return keyPrefix + userID }

func (c *Cache) Get(ctx context.Context, userID string) ([]screening.Recommendation, bool, error) {
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var recs []screening.Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		// a corrupt value is a miss; it will be overwritten
		return nil, false, nil
	}
	return recs, true, nil
}

func (c *Cache) Set(ctx context.Context, userID string, recs []screening.Recommendation, ttl time.Duration) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Check implements the health checker used by /healthz.
func (c *Cache) Check(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
