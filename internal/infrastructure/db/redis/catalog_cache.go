package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnly/course-market/internal/core/domain"
)

const (
	catalogKey        = "catalog:published"
	defaultCatalogTTL = time.Minute
)

// CatalogCache caches the published-course listing as a JSON blob
// under a single key. Admin catalog writes invalidate it; the TTL
// bounds staleness if an invalidation is ever lost.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache wrapping the given client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached listing, or (nil, nil) on a miss. An empty
// cached listing decodes to a non-nil empty slice, so nil always means
// miss.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Course, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}

	courses := []domain.Course{}
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("catalog cache decode: %w", err)
	}
	return courses, nil
}

func (c *CatalogCache) Set(ctx context.Context, courses []domain.Course) error {
	if courses == nil {
		courses = []domain.Course{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
