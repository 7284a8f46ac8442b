package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
)

const (
	defaultQuizCount = 10
	maxQuizCount     = 50
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// SubmitQuiz grades a submission and records the attempt
// @Summary Submit a quiz answer
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body models.SubmitQuizRequest true "Submission payload"
// @Success 200 {object} SuccessResponse{data=models.SubmitQuizResponse}
// @Failure 400 {object} ErrorResponse "Missing field"
// @Failure 404 {object} ErrorResponse "Unknown quiz"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /quizzes/submit [post]
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	h.LogRequest(c, "Submitting quiz answer")

	var req models.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	// The session wins over the body field when both are present.
	if userID, ok := h.currentUserID(c); ok {
		req.UserID = userID
	}

	resp, err := h.quizService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, resp)
}

// GetRandomQuizzes returns random quizzes with answers stripped
// @Summary Fetch random quizzes
// @Tags quizzes
// @Produce json
// @Param limit query int false "Number of quizzes (default 10, max 50)"
// @Param category query string false "Filter by category"
// @Success 200 {object} SuccessResponse{data=[]models.QuizDelivery}
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /quizzes/random [get]
func (h *QuizHandler) GetRandomQuizzes(c *gin.Context) {
	limit := parseLimit(c, defaultQuizCount, maxQuizCount)
	category := c.Query("category")

	h.LogRequest(c, "Fetching random quizzes", "limit", limit, "category", category)

	quizzes, err := h.quizService.GetRandom(c.Request.Context(), limit, category)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, quizzes)
}
