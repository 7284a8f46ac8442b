package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

type LeaderboardHandler struct {
	BaseHandler
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService, logger utils.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler:        NewBaseHandler(logger),
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard returns ranked users or schools
// @Summary Get leaderboard
// @Tags leaderboard
// @Produce json
// @Param type query string false "users or schools (default users)"
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid type"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	boardType := c.DefaultQuery("type", services.LeaderboardUsers)
	limit := parseLimit(c, defaultLeaderboardSize, maxLeaderboardSize)

	h.LogRequest(c, "Fetching leaderboard", "type", boardType, "limit", limit)

	entries, err := h.leaderboardService.Get(c.Request.Context(), boardType, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, entries)
}
