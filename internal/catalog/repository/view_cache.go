package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sundayts/portfolio/internal/catalog/domain"
)

const (
	viewKeyPrefix  = "portfolio:view:" // portfolio:view:{catalog_version}:{show_all}:{tag}
	defaultViewTTL = 10 * time.Minute
)

// ViewCache stores computed catalog views. A miss is reported with
// ok == false and a nil error.
type ViewCache interface {
	Get(ctx context.Context, version string, state domain.FilterState) (view *domain.View, ok bool, err error)
	Set(ctx context.Context, version string, view domain.View) error
	Ping(ctx context.Context) error
}

// RedisViewCache keeps views as JSON strings with a TTL.
type RedisViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisViewCache creates a redis-backed view cache
func NewRedisViewCache(client *redis.Client, ttl time.Duration) *RedisViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &RedisViewCache{client: client, ttl: ttl}
}

func (c *RedisViewCache) Get(ctx context.Context, version string, state domain.FilterState) (*domain.View, bool, error) {
	data, err := c.client.Get(ctx, viewKey(version, state)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get view: %w", err)
	}

	var v domain.View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal view: %w", err)
	}
	return &v, true, nil
}

func (c *RedisViewCache) Set(ctx context.Context, version string, view domain.View) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	if err := c.client.Set(ctx, viewKey(version, view.State), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set view: %w", err)
	}
	return nil
}

func (c *RedisViewCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Tags may contain ':' or spaces, so they are query-escaped into the key.
func viewKey(version string, state domain.FilterState) string {
	return viewKeyPrefix + version + ":" + strconv.FormatBool(state.ShowAll) + ":" + url.QueryEscape(state.ActiveTag)
}

// NopViewCache is used when no cache backend is configured.
type NopViewCache struct{}

func (NopViewCache) Get(context.Context, string, domain.FilterState) (*domain.View, bool, error) {
	return nil, false, nil
}

func (NopViewCache) Set(context.Context, string, domain.View) error { return nil }

func (NopViewCache) Ping(context.Context) error { return ErrCacheDisabled }

// ErrCacheDisabled is returned by NopViewCache.Ping.
var ErrCacheDisabled = errors.New("view cache disabled")
