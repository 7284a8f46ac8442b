package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// ExportAttempts streams an xlsx export of quiz attempts
// @Summary Export quiz attempts
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param category query string false "Filter by quiz category"
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reports/attempts/export [get]
func (h *ReportHandler) ExportAttempts(c *gin.Context) {
	category := c.Query("category")
	h.LogRequest(c, "Exporting quiz attempts", "category", category)

	file, err := h.reportService.ExportAttempts(c.Request.Context(), category)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.streamWorkbook(c, file, "attempts")
}

// ExportLeaderboard streams an xlsx export of the leaderboard
// @Summary Export leaderboard
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param type query string false "users or schools (default users)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Invalid type"
// @Router /reports/leaderboard/export [get]
func (h *ReportHandler) ExportLeaderboard(c *gin.Context) {
	boardType := c.DefaultQuery("type", services.LeaderboardUsers)
	h.LogRequest(c, "Exporting leaderboard", "type", boardType)

	file, err := h.reportService.ExportLeaderboard(c.Request.Context(), boardType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.streamWorkbook(c, file, "leaderboard")
}

func (h *ReportHandler) streamWorkbook(c *gin.Context, file *excelize.File, name string) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102-150405"))

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream workbook", "filename", filename)
	}
}
