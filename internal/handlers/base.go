package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/repositories"
	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
	"github.com/tutelearn/platform-service/internal/validator"
)

// SuccessResponse is the uniform envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the uniform envelope for failed responses.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler provides logging and response helpers shared by all
// handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c, h.logger).Error(msg, args...)
}

func (h *BaseHandler) respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func (h *BaseHandler) respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

func (h *BaseHandler) respondError(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Success: false, Error: message, Details: details})
}

// handleServiceError maps service errors to HTTP statuses. Unknown
// errors become a generic 500 with the detail logged, not exposed.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var missingField *services.MissingFieldError
	var serviceValidation *services.ValidationErrors
	var fieldValidation validator.ValidationErrors

	switch {
	case errors.As(err, &missingField):
		h.respondError(c, http.StatusBadRequest, missingField.Error(), nil)
	case errors.Is(err, services.ErrMissingField):
		h.respondError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &serviceValidation):
		h.respondError(c, http.StatusBadRequest, "validation failed", serviceValidation.Errors)
	case errors.As(err, &fieldValidation):
		h.respondError(c, http.StatusBadRequest, "validation failed", fieldValidation)
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrLessonNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAttemptNotFound),
		repositories.IsNotFoundError(err):
		h.respondError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken):
		h.respondError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidLeaderboard):
		h.respondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		h.LogError(c, err, "Unhandled service error")
		h.respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// currentUserID returns the authenticated user ID set by the auth
// middleware.
func (h *BaseHandler) currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// parseIntQuery reads an integer query parameter, falling back to the
// default on absence or garbage.
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

// parseLimit reads a limit query parameter clamped to max.
func parseLimit(c *gin.Context, fallback, max int) int {
	limit := parseIntQuery(c, "limit", fallback)
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
