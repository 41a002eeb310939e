package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tunegraph/backend/internal/database"
	"github.com/tunegraph/backend/internal/engine"
	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/metrics"
	"github.com/tunegraph/backend/internal/models"
	"github.com/tunegraph/backend/internal/util"
	"github.com/tunegraph/backend/internal/validation"
	"go.uber.org/zap"
)

const maxRecommendationLimit = 100

// RecommendationsResponse is the body of GET /recommendations
type RecommendationsResponse struct {
	User string               `json:"user"`
	List []engine.ScoredMusic `json:"list"`
}

// GetRecommendations runs the full pipeline for one user
// GET /api/v1/recommendations?user=<id>&limit=<n>
func (h *Handlers) GetRecommendations(c *gin.Context) {
	userID := c.Query("user")
	if !validation.ValidID(userID) {
		metrics.Get().ValidationFailures.WithLabelValues("user").Inc()
		util.RespondValidationError(c, "user", "must be a non-empty alphanumeric id")
		return
	}

	limit := util.ParseInt(c.DefaultQuery("limit", "5"), engine.DefaultLimit)
	limit = util.ClampInt(limit, 1, maxRecommendationLimit)

	start := time.Now()
	ranked, err := h.engine.Recommend(c.Request.Context(), userID, limit)
	elapsed := time.Since(start)

	if err != nil {
		var consistencyErr *engine.ConsistencyError
		switch {
		case errors.Is(err, engine.ErrUserNotFound):
			metrics.Get().RecommendationErrors.WithLabelValues("not_found").Inc()
			util.RespondNotFound(c, "user")
		case errors.As(err, &consistencyErr):
			logger.Log.Error("Catalog inconsistency during recommendation",
				logger.WithUserID(consistencyErr.UserID),
				logger.WithMusicID(consistencyErr.MusicID),
			)
			metrics.Get().RecommendationErrors.WithLabelValues("data_consistency").Inc()
			util.RespondInternalError(c, "store inconsistency detected")
		default:
			logger.ErrorWithFields("Recommendation failed", err)
			metrics.Get().RecommendationErrors.WithLabelValues("internal").Inc()
			util.RespondInternalError(c, "failed to compute recommendations")
		}
		return
	}

	metrics.Get().RecommendationsServed.WithLabelValues("ok").Inc()
	metrics.Get().RecommendationDuration.WithLabelValues().Observe(elapsed.Seconds())

	trackImpressions(userID, ranked)

	logger.Log.Debug("Recommendations served",
		logger.WithUserID(userID),
		zap.Int("count", len(ranked)),
		zap.Duration("elapsed", elapsed),
	)

	c.JSON(http.StatusOK, RecommendationsResponse{User: userID, List: ranked})
}

// trackImpressions records which musics were served at which rank. Async
// write, best effort; the serving path never blocks on it.
func trackImpressions(userID string, ranked []engine.ScoredMusic) {
	if database.DB == nil || len(ranked) == 0 {
		return
	}

	impressions := make([]models.RecommendationImpression, 0, len(ranked))
	for i, scored := range ranked {
		impressions = append(impressions, models.RecommendationImpression{
			ID:       uuid.NewString(),
			UserID:   userID,
			MusicID:  scored.MusicID,
			Position: i,
			Rating:   scored.Rating,
		})
	}

	go func() {
		if err := database.DB.CreateInBatches(&impressions, 100).Error; err != nil {
			logger.ErrorWithFields("Failed to track impressions", err)
		}
	}()
}
