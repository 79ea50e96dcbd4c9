package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CatalogStatus is the part of the catalog service the health check reads.
type CatalogStatus interface {
	Len() int
	CacheStatus(ctx context.Context) string
}

// SubscriberCounter reports the newsletter list size.
type SubscriberCounter interface {
	Count(ctx context.Context) (int64, error)
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Projects    int       `json:"projects"`
	Cache       string    `json:"cache"`
	DB          string    `json:"db,omitempty"`
	Subscribers *int64    `json:"subscribers,omitempty"` // nil when the count could not be read
}

type HealthHandler struct {
	serviceName string
	version     string
	catalog     CatalogStatus
	subscribers SubscriberCounter
	db          *sql.DB
}

// NewHealthHandler creates the health handler. db is nil when the catalog
// is read from the content file; subscribers may be nil.
func NewHealthHandler(serviceName, version string, catalog CatalogStatus, subscribers SubscriberCounter, db *sql.DB) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		catalog:     catalog,
		subscribers: subscribers,
		db:          db,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	dbStatus := ""
	if h.db != nil {
		if err := h.db.PingContext(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	var subscribers *int64
	if h.subscribers != nil {
		if n, err := h.subscribers.Count(pingCtx); err == nil {
			subscribers = &n
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Service:     h.serviceName,
		Version:     h.version,
		Projects:    h.catalog.Len(),
		Cache:       h.catalog.CacheStatus(pingCtx),
		DB:          dbStatus,
		Subscribers: subscribers,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
