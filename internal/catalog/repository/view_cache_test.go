package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundayts/portfolio/internal/catalog/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	err = client.Ping(context.Background()).Err()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func testView(state domain.FilterState) domain.View {
	return domain.BuildView([]domain.Project{
		{Title: "A", Slug: "a", Tags: []string{"Go", "C++: legacy"}, Featured: true, Year: "2023"},
		{Title: "B", Slug: "b", Tags: []string{}, Year: ""},
	}, state)
}

func TestRedisViewCache_RoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisViewCache(client, time.Minute)
	ctx := context.Background()

	state := domain.FilterState{ActiveTag: "C++: legacy", ShowAll: true}

	_, ok, err := cache.Get(ctx, "v1", state)
	require.NoError(t, err)
	assert.False(t, ok)

	want := testView(state)
	require.NoError(t, cache.Set(ctx, "v1", want))

	got, ok, err := cache.Get(ctx, "v1", state)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, *got)

	_, ok, err = cache.Get(ctx, "v2", state)
	require.NoError(t, err)
	assert.False(t, ok, "a different catalog version must miss")

	_, ok, err = cache.Get(ctx, "v1", domain.FilterState{ActiveTag: "C++: legacy"})
	require.NoError(t, err)
	assert.False(t, ok, "show_all is part of the key")
}

func TestRedisViewCache_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisViewCache(client, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "v1", testView(domain.FilterState{})))
	assert.Equal(t, 30*time.Second, mr.TTL(viewKey("v1", domain.FilterState{})))

	mr.FastForward(31 * time.Second)
	_, ok, err := cache.Get(ctx, "v1", domain.FilterState{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisViewCache_CorruptEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisViewCache(client, 0)

	require.NoError(t, mr.Set(viewKey("v1", domain.FilterState{}), "{not json"))
	_, ok, err := cache.Get(context.Background(), "v1", domain.FilterState{})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisViewCache_Ping(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisViewCache(client, 0)

	require.NoError(t, cache.Ping(context.Background()))
	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}

func TestNopViewCache(t *testing.T) {
	var c ViewCache = NopViewCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "v1", testView(domain.FilterState{})))
	_, ok, err := c.Get(ctx, "v1", domain.FilterState{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, c.Ping(ctx), ErrCacheDisabled)
}
