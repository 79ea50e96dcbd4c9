package bootstrap

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/sundayts/portfolio/internal/api/http"
	"github.com/sundayts/portfolio/internal/api/http/middleware"
	cataloghttp "github.com/sundayts/portfolio/internal/catalog/http"
	catalogservice "github.com/sundayts/portfolio/internal/catalog/service"
	"github.com/sundayts/portfolio/internal/content"
	"github.com/sundayts/portfolio/internal/metrics"
	newsletterhttp "github.com/sundayts/portfolio/internal/newsletter/http"
	newsletterservice "github.com/sundayts/portfolio/internal/newsletter/service"
	"github.com/sundayts/portfolio/internal/site"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	SiteURL        string
	AllowedOrigins []string
	// NewsletterRate is signups per minute per client, NewsletterBurst the
	// bucket size.
	NewsletterRate  int
	NewsletterBurst int

	Log        *zap.Logger
	Metrics    *metrics.Metrics
	DB         *sql.DB
	Profile    content.Profile
	Catalog    *catalogservice.CatalogService
	Newsletter *newsletterservice.NewsletterService
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	if dep.Log == nil {
		dep.Log = zap.NewNop()
	}
	if dep.Metrics == nil {
		dep.Metrics = metrics.New()
	}
	if dep.NewsletterRate <= 0 {
		dep.NewsletterRate = 6
	}
	if dep.NewsletterBurst <= 0 {
		dep.NewsletterBurst = 3
	}

	tmpl, err := site.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(middleware.MetricsMiddleware(dep.Metrics))
	r.SetHTMLTemplate(tmpl)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Catalog, dep.Newsletter, dep.DB)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))

	// one limiter shared by the form post and the JSON endpoint
	limiter := middleware.NewIPRateLimiter(dep.NewsletterRate, dep.NewsletterBurst)

	api := r.Group("/api/v1")
	api.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	cataloghttp.New(dep.Catalog).Register(api)
	newsletterhttp.New(dep.Newsletter).Register(api, middleware.RateLimit(limiter, nil))

	siteHandler := site.New(dep.Profile, dep.Catalog, dep.Newsletter, dep.SiteURL, dep.Log)
	siteHandler.Register(r, middleware.RateLimit(limiter, siteHandler.NewsletterLimited))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
			return
		}
		siteHandler.NotFound(c)
	})

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
