package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-blog/inkwell/internal/core/domain"
)

const blogCacheTTL = 5 * time.Minute

// BlogCache is a read-through cache for blog detail lookups.
// Key format: blog:<id>
type BlogCache struct {
	client *redis.Client
}

// NewBlogCache creates a BlogCache wrapping the given Redis client.
func NewBlogCache(client *redis.Client) *BlogCache {
	return &BlogCache{client: client}
}

// Get returns the cached post, or (nil, nil) on a miss.
func (c *BlogCache) Get(ctx context.Context, id string) (*domain.Blog, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("blog cache get: %w", err)
	}

	var blog domain.Blog
	if err := json.Unmarshal(raw, &blog); err != nil {
		// A corrupt entry behaves like a miss; the store is authoritative.
		return nil, nil
	}
	return &blog, nil
}

// Set stores the post for blogCacheTTL.
func (c *BlogCache) Set(ctx context.Context, blog *domain.Blog) error {
	raw, err := json.Marshal(blog)
	if err != nil {
		return fmt.Errorf("blog cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(blog.ID), raw, blogCacheTTL).Err()
}

// Invalidate drops the cached entry after an update or delete.
func (c *BlogCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *BlogCache) key(id string) string {
	return "blog:" + id
}
