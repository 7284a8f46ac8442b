package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
)

type LessonHandler struct {
	BaseHandler
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService, logger utils.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: NewBaseHandler(logger),
		lessonService: lessonService,
	}
}

// GetProgress returns lesson progress for a (user, lesson) pair
// @Summary Get lesson progress
// @Tags lessons
// @Produce json
// @Param key path string true "Lesson key"
// @Param userId query int false "User ID (required without a session)"
// @Success 200 {object} SuccessResponse{data=models.ProgressResponse}
// @Failure 400 {object} ErrorResponse "Missing userId"
// @Failure 404 {object} ErrorResponse "Unknown lesson"
// @Router /lessons/{key}/progress [get]
func (h *LessonHandler) GetProgress(c *gin.Context) {
	lessonKey := c.Param("key")

	userID, ok := h.resolveUserID(c, parseIntQuery(c, "userId", 0))
	if !ok {
		h.respondError(c, http.StatusBadRequest, "missing required field: userId", nil)
		return
	}

	h.LogRequest(c, "Fetching lesson progress", "lesson_key", lessonKey, "user_id", userID)

	progress, err := h.lessonService.GetProgress(c.Request.Context(), userID, lessonKey)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, progress)
}

// SaveProgress upserts lesson progress for a (user, lesson) pair
// @Summary Save lesson progress
// @Tags lessons
// @Accept json
// @Produce json
// @Param key path string true "Lesson key"
// @Param request body models.SaveProgressRequest true "Progress payload"
// @Success 200 {object} SuccessResponse{data=models.ProgressResponse}
// @Failure 400 {object} ErrorResponse "Missing userId"
// @Failure 404 {object} ErrorResponse "Unknown lesson"
// @Router /lessons/{key}/progress [post]
func (h *LessonHandler) SaveProgress(c *gin.Context) {
	lessonKey := c.Param("key")

	var req models.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	userID, ok := h.resolveUserID(c, int(req.UserID))
	if !ok {
		h.respondError(c, http.StatusBadRequest, "missing required field: userId", nil)
		return
	}

	h.LogRequest(c, "Saving lesson progress", "lesson_key", lessonKey, "user_id", userID)

	progress, err := h.lessonService.SaveProgress(c.Request.Context(), userID, lessonKey, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, progress)
}

// resolveUserID prefers the session user over the caller-supplied one.
func (h *LessonHandler) resolveUserID(c *gin.Context, supplied int) (uint, bool) {
	if userID, ok := h.currentUserID(c); ok {
		return userID, true
	}
	if supplied > 0 {
		return uint(supplied), true
	}
	return 0, false
}
