// Package cache keeps year pages of journal records in Redis so the progress
// view can render before the store answers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"tableflip.dev/wins/pkg/journal"
)

// DefaultTTL bounds how long a cached year page may be served.
const DefaultTTL = 24 * time.Hour

// YearCache stores the last fetched page of records for a year.
type YearCache interface {
	Get(ctx context.Context, year int) ([]journal.Record, bool, error)
	Put(ctx context.Context, year int, records []journal.Record) error
	Invalidate(ctx context.Context, year int) error
	Close() error
}

// RedisCache implements YearCache using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to redisURL and checks that the server answers.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect to redis: %w", err)
	}
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "wins:year:",
		ttl:    DefaultTTL,
	}
}

func (c *RedisCache) key(year int) string {
	return c.prefix + strconv.Itoa(year)
}

// Get returns the cached page for year. A miss is reported as false with no error.
func (c *RedisCache) Get(ctx context.Context, year int) ([]journal.Record, bool, error) {
	raw, err := c.client.Get(ctx, c.key(year)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %d: %w: %v", year, journal.ErrTransport, err)
	}
	var records []journal.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, fmt.Errorf("cache: decode %d: %w: %v", year, journal.ErrParse, err)
	}
	return records, true, nil
}

// Put replaces the cached page for year.
func (c *RedisCache) Put(ctx context.Context, year int, records []journal.Record) error {
	if records == nil {
		records = []journal.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cache: encode %d: %w: %v", year, journal.ErrParse, err)
	}
	if err := c.client.Set(ctx, c.key(year), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: put %d: %w: %v", year, journal.ErrTransport, err)
	}
	return nil
}

// Invalidate drops the cached page for year.
func (c *RedisCache) Invalidate(ctx context.Context, year int) error {
	if err := c.client.Del(ctx, c.key(year)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %d: %w: %v", year, journal.ErrTransport, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
