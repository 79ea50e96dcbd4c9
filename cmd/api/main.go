package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sundayts/portfolio/config"
	"github.com/sundayts/portfolio/internal/bootstrap"
	catalogrepo "github.com/sundayts/portfolio/internal/catalog/repository"
	catalogservice "github.com/sundayts/portfolio/internal/catalog/service"
	"github.com/sundayts/portfolio/internal/jobs"
	"github.com/sundayts/portfolio/internal/logging"
	"github.com/sundayts/portfolio/internal/metrics"
	nlrepo "github.com/sundayts/portfolio/internal/newsletter/repository"
	nlservice "github.com/sundayts/portfolio/internal/newsletter/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("portfolio stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)
	logger = logger.With(zap.String("service", cfg.App.ServiceName), zap.String("version", cfg.App.Version))

	var db *sql.DB
	if cfg.Content.Source == config.SourcePostgres {
		var err error
		db, err = bootstrap.OpenCatalogDB(ctx, bootstrap.DBOptions{Config: &cfg.Database})
		if err != nil {
			return err
		}
		defer db.Close()
	}

	doc, catalog, err := bootstrap.LoadContent(ctx, cfg.Content, db)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	logger.Info("catalog loaded",
		zap.String("source", cfg.Content.Source),
		zap.Int("projects", catalog.Len()),
		zap.String("catalog_version", catalog.Version()))

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.New()

	var (
		viewCache catalogrepo.ViewCache
		store     nlrepo.Store
	)
	if rdb != nil {
		viewCache = catalogrepo.NewRedisViewCache(rdb, cfg.Cache.ViewTTL)
		store = nlrepo.NewRedisStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set: view cache disabled, newsletter signups kept in memory")
		store = nlrepo.NewMemoryStore()
	}

	catalogSvc := catalogservice.NewCatalogService(catalog, viewCache, logger, m)
	newsletterSvc := nlservice.NewNewsletterService(store, logger, m)

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     cfg.App.ServiceName,
		Version:         cfg.App.Version,
		SiteURL:         cfg.Server.SiteURL,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		NewsletterRate:  cfg.Newsletter.RatePerMinute,
		NewsletterBurst: cfg.Newsletter.Burst,
		Log:             logger,
		Metrics:         m,
		DB:              db,
		Profile:         doc.Profile,
		Catalog:         catalogSvc,
		Newsletter:      newsletterSvc,
	})
	if err != nil {
		return err
	}

	scheduler, err := newScheduler(cfg, rdb, catalogSvc, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if scheduler != nil {
		scheduler.Start()
		// warm once at startup instead of waiting for the first tick
		g.Go(func() error {
			scheduler.RunNow()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTO))

		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTO)
		defer cancel()

		if scheduler != nil {
			if err := scheduler.Stop(sctx); err != nil {
				logger.Warn("scheduler stop", zap.Error(err))
			}
		}
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// newScheduler returns nil when there is nothing to warm.
func newScheduler(cfg *config.Config, rdb *redis.Client, svc *catalogservice.CatalogService, logger *zap.Logger) (*jobs.Scheduler, error) {
	if rdb == nil || cfg.Cache.WarmSchedule == "" {
		return nil, nil
	}
	return jobs.NewScheduler(cfg.Cache.WarmSchedule, svc, logger.Named("jobs"))
}
