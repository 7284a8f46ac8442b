package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/services"
)

// JWTAuthMiddleware resolves the bearer token into a user ID.
type JWTAuthMiddleware struct {
	auth services.AuthService
}

func NewJWTAuthMiddleware(auth services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{auth: auth}
}

// AuthMiddleware rejects requests without a valid bearer token and
// sets user_id in the context for the handlers downstream.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.userFromHeader(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Error:   "missing or invalid authorization token",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware sets user_id when a valid token is present
// but lets unauthenticated requests through. Used on endpoints that
// accept the user ID from the query or body instead.
func (m *JWTAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := m.userFromHeader(c); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func (m *JWTAuthMiddleware) userFromHeader(c *gin.Context) (uint, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return 0, false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return 0, false
	}

	userID, err := m.auth.ParseToken(token)
	if err != nil {
		return 0, false
	}

	return userID, true
}
