package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
)

const maxDashboardItems = 100

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// GetAds returns filtered ad campaigns
// @Summary List ad campaigns
// @Tags dashboards
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.AdCampaign}
// @Router /dashboards/ads [get]
func (h *DashboardHandler) GetAds(c *gin.Context) {
	filters := h.parseDashboardFilters(c)
	h.LogRequest(c, "Fetching ad campaigns")
	h.respondOK(c, h.dashboardService.Ads(c.Request.Context(), filters))
}

// GetAnalytics returns filtered analytics reports
// @Summary List analytics reports
// @Tags dashboards
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.AnalyticsReport}
// @Router /dashboards/analytics [get]
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	filters := h.parseDashboardFilters(c)
	h.LogRequest(c, "Fetching analytics reports")
	h.respondOK(c, h.dashboardService.Analytics(c.Request.Context(), filters))
}

// GetInfluencers returns filtered influencer profiles
// @Summary List influencers
// @Tags dashboards
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Influencer}
// @Router /dashboards/influencers [get]
func (h *DashboardHandler) GetInfluencers(c *gin.Context) {
	filters := h.parseDashboardFilters(c)
	h.LogRequest(c, "Fetching influencers")
	h.respondOK(c, h.dashboardService.Influencers(c.Request.Context(), filters))
}

// GetInvestors returns filtered investor profiles
// @Summary List investors
// @Tags dashboards
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.Investor}
// @Router /dashboards/investors [get]
func (h *DashboardHandler) GetInvestors(c *gin.Context) {
	filters := h.parseDashboardFilters(c)
	h.LogRequest(c, "Fetching investors")
	h.respondOK(c, h.dashboardService.Investors(c.Request.Context(), filters))
}

// GetQuizTopics returns filtered quiz topics
// @Summary List quiz topics
// @Tags dashboards
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.QuizTopic}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /quiz-topics [get]
func (h *DashboardHandler) GetQuizTopics(c *gin.Context) {
	filters := h.parseDashboardFilters(c)
	h.LogRequest(c, "Fetching quiz topics")

	topics, err := h.dashboardService.QuizTopics(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, topics)
}

func (h *DashboardHandler) parseDashboardFilters(c *gin.Context) services.DashboardFilters {
	return services.DashboardFilters{
		Type:       c.Query("type"),
		Sponsor:    c.Query("sponsor"),
		Tier:       c.Query("tier"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		AgeGroup:   c.Query("ageGroup"),
		Search:     c.Query("search"),
		Limit:      parseLimit(c, 0, maxDashboardItems),
	}
}
