package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/catalog/repository"
	"github.com/sundayts/portfolio/internal/metrics"
)

type failingCache struct {
	err error
}

func (f failingCache) Get(context.Context, string, domain.FilterState) (*domain.View, bool, error) {
	return nil, false, f.err
}

func (f failingCache) Set(context.Context, string, domain.View) error { return f.err }

func (f failingCache) Ping(context.Context) error { return f.err }

type memoryCache struct {
	mu    sync.Mutex
	views map[string]domain.View
}

func (m *memoryCache) key(version string, s domain.FilterState) string {
	if s.ShowAll {
		return version + "|all|" + s.ActiveTag
	}
	return version + "|featured|" + s.ActiveTag
}

func (m *memoryCache) Get(_ context.Context, version string, s domain.FilterState) (*domain.View, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[m.key(version, s)]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (m *memoryCache) Set(_ context.Context, version string, v domain.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.views == nil {
		m.views = map[string]domain.View{}
	}
	m.views[m.key(version, v.State)] = v
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog([]domain.Project{
		{Title: "A", Tags: []string{"X"}, Featured: true, Year: "2023"},
		{Title: "B", Tags: []string{"Y"}, Featured: false, Year: "2021"},
	})
	require.NoError(t, err)
	return c
}

func TestCatalogService_View(t *testing.T) {
	m := metrics.New()
	cache := &memoryCache{}
	svc := NewCatalogService(testCatalog(t), cache, nil, m)
	ctx := context.Background()

	v := svc.View(ctx, domain.FilterState{})
	require.Len(t, v.Projects, 1)
	assert.Equal(t, "A", v.Projects[0].Title)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogViews.WithLabelValues("miss")))

	again := svc.View(ctx, domain.FilterState{})
	assert.Equal(t, v, again)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogViews.WithLabelValues("hit")))

	empty := svc.View(ctx, domain.FilterState{ActiveTag: "Z", ShowAll: true})
	assert.True(t, empty.Empty)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogEmptyViews))
}

func TestCatalogService_ViewSurvivesCacheFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewCatalogService(testCatalog(t), failingCache{err: errors.New("redis gone")}, zap.New(core), nil)

	v := svc.View(context.Background(), domain.FilterState{ShowAll: true})
	assert.Len(t, v.Projects, 2)
	assert.Equal(t, 1, logs.FilterMessage("view cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("view cache write failed").Len())
	assert.Equal(t, "down", svc.CacheStatus(context.Background()))
}

func TestCatalogService_Lookup(t *testing.T) {
	svc := NewCatalogService(testCatalog(t), nil, nil, nil)

	assert.Equal(t, []string{"X", "Y"}, svc.Tags())
	assert.Equal(t, 2, svc.Len())
	assert.Len(t, svc.Projects(), 2)

	p, err := svc.ProjectBySlug("b")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Title)

	_, err = svc.ProjectBySlug("zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "disabled", svc.CacheStatus(context.Background()))
}

func TestCatalogService_Apply(t *testing.T) {
	svc := NewCatalogService(testCatalog(t), nil, nil, nil)

	s, err := svc.Apply(domain.FilterState{}, domain.Action{Kind: domain.ActionSelectTag, Tag: "X"})
	require.NoError(t, err)
	assert.Equal(t, "X", s.ActiveTag)

	s, err = svc.Apply(s, domain.Action{Kind: domain.ActionSelectTag, Tag: "X"})
	require.NoError(t, err)
	assert.Equal(t, domain.FilterState{}, s)

	_, err = svc.Apply(s, domain.Action{Kind: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestCatalogService_WarmCacheWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := repository.NewRedisViewCache(client, time.Minute)
	catalog := testCatalog(t)
	svc := NewCatalogService(catalog, cache, nil, nil)

	n, err := svc.WarmCache(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n, "(none, X, Y) x (featured, all)")
	assert.Len(t, mr.Keys(), 6)

	got, ok, err := cache.Get(context.Background(), catalog.Version(), domain.FilterState{ActiveTag: "Y", ShowAll: true})
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, "B", got.Projects[0].Title)
	assert.Equal(t, "up", svc.CacheStatus(context.Background()))
}

func TestCatalogService_WarmCacheStopsOnCancel(t *testing.T) {
	svc := NewCatalogService(testCatalog(t), &memoryCache{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := svc.WarmCache(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}
