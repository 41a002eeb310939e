package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/metrics"
	"github.com/tunegraph/backend/internal/util"
	"github.com/tunegraph/backend/internal/validation"
)

// Catalog responses can be cached aggressively: musics are immutable once
// loaded, so staleness only lasts until the next seed run.
const catalogCacheTTL = 5 * time.Minute

// ListMusics returns the full catalog
// GET /api/v1/musics
func (h *Handlers) ListMusics(c *gin.Context) {
	const cacheKey = "catalog:all"

	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
		metrics.Get().CacheHitsTotal.WithLabelValues("catalog").Inc()
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}
	metrics.Get().CacheMissesTotal.WithLabelValues("catalog").Inc()

	body := gin.H{"musics": h.catalog.All(), "count": h.catalog.Count()}
	h.cacheJSON(c, cacheKey, body)
	c.JSON(http.StatusOK, body)
}

// GetMusic returns one catalog entry
// GET /api/v1/musics/:id
func (h *Handlers) GetMusic(c *gin.Context) {
	musicID := c.Param("id")
	if !validation.ValidID(musicID) {
		util.RespondValidationError(c, "id", "must be a non-empty alphanumeric id")
		return
	}

	cacheKey := "catalog:music:" + musicID
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
		metrics.Get().CacheHitsTotal.WithLabelValues("catalog").Inc()
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}
	metrics.Get().CacheMissesTotal.WithLabelValues("catalog").Inc()

	music, ok := h.catalog.FindByID(musicID)
	if !ok {
		util.RespondNotFound(c, "music")
		return
	}

	h.cacheJSON(c, cacheKey, music)
	c.JSON(http.StatusOK, music)
}

func (h *Handlers) cacheJSON(c *gin.Context, key string, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		return
	}
	if err := h.cache.Set(c.Request.Context(), key, string(data), catalogCacheTTL); err != nil {
		logger.ErrorWithFields("Failed to cache catalog response", err)
	}
}
