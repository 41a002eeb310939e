package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunegraph/backend/internal/logger"
	"github.com/tunegraph/backend/internal/metrics"
	"github.com/tunegraph/backend/internal/util"
	"github.com/tunegraph/backend/internal/validation"
)

// FollowRequest is the body of POST /follow
type FollowRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ListenRequest is the body of POST /listen
type ListenRequest struct {
	User  string `json:"user"`
	Music string `json:"music"`
}

// Follow records a directed follow edge, creating either user on first contact
// POST /api/v1/follow
func (h *Handlers) Follow(c *gin.Context) {
	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	if !validation.ValidID(req.From) {
		metrics.Get().ValidationFailures.WithLabelValues("from").Inc()
		util.RespondValidationError(c, "from", "must be a non-empty alphanumeric id")
		return
	}
	if !validation.ValidID(req.To) {
		metrics.Get().ValidationFailures.WithLabelValues("to").Inc()
		util.RespondValidationError(c, "to", "must be a non-empty alphanumeric id")
		return
	}

	if err := h.users.Follow(req.From, req.To); err != nil {
		logger.ErrorWithFields("Failed to record follow", err)
		metrics.Get().FollowsTotal.WithLabelValues("error").Inc()
		util.RespondInternalError(c, "failed to record follow")
		return
	}

	metrics.Get().FollowsTotal.WithLabelValues("ok").Inc()
	metrics.Get().UsersIndexed.WithLabelValues().Set(float64(h.users.Count()))

	logger.Log.Debug("Follow recorded",
		logger.WithUserID(req.From),
		logger.WithUserID(req.To),
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Listen increments the user's play count for a catalog music
// POST /api/v1/listen
func (h *Handlers) Listen(c *gin.Context) {
	var req ListenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	if !validation.ValidID(req.User) {
		metrics.Get().ValidationFailures.WithLabelValues("user").Inc()
		util.RespondValidationError(c, "user", "must be a non-empty alphanumeric id")
		return
	}
	if !validation.ValidID(req.Music) {
		metrics.Get().ValidationFailures.WithLabelValues("music").Inc()
		util.RespondValidationError(c, "music", "must be a non-empty alphanumeric id")
		return
	}

	// Reject listens for musics the catalog does not know. Accepting them
	// would plant the exact corruption the engine later fails on.
	if _, ok := h.catalog.FindByID(req.Music); !ok {
		metrics.Get().ListensTotal.WithLabelValues("unknown_music").Inc()
		util.RespondNotFound(c, "music")
		return
	}

	if err := h.users.Listen(req.User, req.Music); err != nil {
		logger.ErrorWithFields("Failed to record listen", err)
		metrics.Get().ListensTotal.WithLabelValues("error").Inc()
		util.RespondInternalError(c, "failed to record listen")
		return
	}

	metrics.Get().ListensTotal.WithLabelValues("ok").Inc()
	metrics.Get().UsersIndexed.WithLabelValues().Set(float64(h.users.Count()))

	logger.Log.Debug("Listen recorded",
		logger.WithUserID(req.User),
		logger.WithMusicID(req.Music),
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ResetUsers clears the user store. Used by acceptance fixtures to start from
// a clean slate; the catalog is untouched.
// POST /api/v1/admin/reset
func (h *Handlers) ResetUsers(c *gin.Context) {
	if err := h.users.Clear(); err != nil {
		logger.ErrorWithFields("Failed to reset user store", err)
		util.RespondInternalError(c, "failed to reset user store")
		return
	}

	metrics.Get().UsersIndexed.WithLabelValues().Set(0)
	logger.Log.Info("User store reset")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
