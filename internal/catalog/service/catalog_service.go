package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sundayts/portfolio/internal/catalog/domain"
	"github.com/sundayts/portfolio/internal/catalog/repository"
	"github.com/sundayts/portfolio/internal/logging"
	"github.com/sundayts/portfolio/internal/metrics"
)

// CatalogService answers every read of the project catalog. The catalog is
// immutable, so the service is safe for concurrent use without locking.
type CatalogService struct {
	catalog *domain.Catalog
	cache   repository.ViewCache
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewCatalogService creates a new catalog service. cache, log and m may be
// nil.
func NewCatalogService(catalog *domain.Catalog, cache repository.ViewCache, log *zap.Logger, m *metrics.Metrics) *CatalogService {
	if cache == nil {
		cache = repository.NopViewCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{
		catalog: catalog,
		cache:   cache,
		log:     log,
		metrics: m,
	}
}

// Tags returns the filter options offered to visitors.
func (s *CatalogService) Tags() []string {
	return s.catalog.Tags()
}

// Projects returns the full catalog in source order.
func (s *CatalogService) Projects() []domain.Project {
	return s.catalog.Projects()
}

// Len is the catalog size.
func (s *CatalogService) Len() int {
	return s.catalog.Len()
}

// ProjectBySlug returns one project or domain.ErrNotFound.
func (s *CatalogService) ProjectBySlug(slug string) (domain.Project, error) {
	return s.catalog.BySlug(slug)
}

// View returns the filtered, grouped projects for state. A cache failure is
// logged and the view is computed directly.
func (s *CatalogService) View(ctx context.Context, state domain.FilterState) domain.View {
	log := logging.FromContext(ctx, s.log)
	version := s.catalog.Version()

	cached, ok, err := s.cache.Get(ctx, version, state)
	if err != nil {
		log.Warn("view cache read failed", zap.Error(err))
	}
	if ok {
		s.observe("hit", *cached)
		return *cached
	}

	view := s.catalog.View(state)
	if err := s.cache.Set(ctx, version, view); err != nil {
		log.Warn("view cache write failed", zap.Error(err))
	}
	s.observe("miss", view)
	return view
}

// Apply runs a visitor action against state.
func (s *CatalogService) Apply(state domain.FilterState, action domain.Action) (domain.FilterState, error) {
	return state.Apply(action)
}

// WarmCache precomputes the view for every tag (and no tag) in both
// featured-only and show-all mode. It returns the number of views stored.
func (s *CatalogService) WarmCache(ctx context.Context) (int, error) {
	version := s.catalog.Version()
	tags := append([]string{""}, s.catalog.Tags()...)

	stored := 0
	for _, tag := range tags {
		for _, showAll := range []bool{false, true} {
			if err := ctx.Err(); err != nil {
				return stored, err
			}
			view := s.catalog.View(domain.FilterState{ActiveTag: tag, ShowAll: showAll})
			if err := s.cache.Set(ctx, version, view); err != nil {
				return stored, err
			}
			stored++
		}
	}
	s.log.Info("catalog view cache warmed",
		zap.Int("views", stored),
		zap.String("catalog_version", version))
	return stored, nil
}

// CacheStatus is "up", "down" or "disabled".
func (s *CatalogService) CacheStatus(ctx context.Context) string {
	switch err := s.cache.Ping(ctx); {
	case err == nil:
		return "up"
	case errors.Is(err, repository.ErrCacheDisabled):
		return "disabled"
	default:
		return "down"
	}
}

func (s *CatalogService) observe(cache string, v domain.View) {
	if s.metrics == nil {
		return
	}
	s.metrics.CatalogViews.WithLabelValues(cache).Inc()
	if v.Empty {
		s.metrics.CatalogEmptyViews.Inc()
	}
}
