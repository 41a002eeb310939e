// Package handlers contains the HTTP handlers for the API. Route dispatch,
// request parsing and status-code mapping live here; the recommendation
// logic itself is in internal/engine.
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tunegraph/backend/internal/cache"
	"github.com/tunegraph/backend/internal/engine"
	"github.com/tunegraph/backend/internal/metrics"
	"github.com/tunegraph/backend/internal/store"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	users   *store.UserStore
	catalog *store.CatalogStore
	engine  *engine.Engine
	cache   *cache.RedisClient
}

// NewHandlers creates a new handlers instance over the given stores
func NewHandlers(users *store.UserStore, catalog *store.CatalogStore) *Handlers {
	return &Handlers{
		users:   users,
		catalog: catalog,
		engine:  engine.New(users, catalog),
	}
}

// SetCache attaches the optional Redis cache for catalog reads
func (h *Handlers) SetCache(rc *cache.RedisClient) {
	h.cache = rc
}

// RequestIDMiddleware tags every request with a correlation id
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// MetricsMiddleware records request counts and latency per route
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.Get().HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.Get().HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
