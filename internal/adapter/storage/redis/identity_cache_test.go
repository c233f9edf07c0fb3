package redis

import (
	"context"
	"testing"
	"time"

	"church-cms/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdentityCache(client)
	ctx := context.Background()

	key := "3f79bb7b435b05321651daefd374cdc681dc06faa65e374e38337b88ca046dea"
	identity := &domain.Identity{UserID: "u-1", Email: "admin@church.org", Role: domain.RoleAdmin}

	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, cache.Set(ctx, key, identity, time.Minute))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, identity, result)
	assert.True(t, result.IsAdmin())
}

func TestIdentityCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdentityCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", &domain.Identity{UserID: "u-2"}, time.Second))

	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestIdentityCache_CorruptEntry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdentityCache(client)

	require.NoError(t, s.Set("hcm:identity:bad", "not-json"))

	_, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
}
