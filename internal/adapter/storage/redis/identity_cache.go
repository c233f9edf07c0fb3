package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"church-cms/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// IdentityCache implements ports.IdentityCache using Redis.
type IdentityCache struct {
	client *goredis.Client
	prefix string
}

// NewIdentityCache creates a new Redis-backed identity cache.
func NewIdentityCache(client *goredis.Client) *IdentityCache {
	return &IdentityCache{
		client: client,
		prefix: keyPrefix + "identity:",
	}
}

// Get returns the cached identity for key, or nil, nil on a miss.
func (c *IdentityCache) Get(ctx context.Context, key string) (*domain.Identity, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis identity get: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal(val, &id); err != nil {
		return nil, fmt.Errorf("decode cached identity: %w", err)
	}
	return &id, nil
}

// Set stores identity under key for ttl.
func (c *IdentityCache) Set(ctx context.Context, key string, identity *domain.Identity, ttl time.Duration) error {
	val, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis identity set: %w", err)
	}
	return nil
}
