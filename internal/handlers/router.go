package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutelearn/platform-service/internal/services"
	"github.com/tutelearn/platform-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	quizHandler        *QuizHandler
	lessonHandler      *LessonHandler
	leaderboardHandler *LeaderboardHandler
	dashboardHandler   *DashboardHandler
	reportHandler      *ReportHandler
	authMiddleware     *JWTAuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		quizHandler:        NewQuizHandler(serviceManager.Quiz(), logger),
		lessonHandler:      NewLessonHandler(serviceManager.Lesson(), logger),
		leaderboardHandler: NewLeaderboardHandler(serviceManager.Leaderboard(), logger),
		dashboardHandler:   NewDashboardHandler(serviceManager.Dashboard(), logger),
		reportHandler:      NewReportHandler(serviceManager.Report(), logger),
		authMiddleware:     NewJWTAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "platform-service",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Auth routes - public
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("/random", hm.quizHandler.GetRandomQuizzes)
			quizzes.POST("/submit", hm.authMiddleware.OptionalAuthMiddleware(), hm.quizHandler.SubmitQuiz)
		}

		// Lesson progress routes; userId may come from the session or
		// from the query/body
		lessons := v1.Group("/lessons")
		lessons.Use(hm.authMiddleware.OptionalAuthMiddleware())
		{
			lessons.GET("/:key/progress", hm.lessonHandler.GetProgress)
			lessons.POST("/:key/progress", hm.lessonHandler.SaveProgress)
		}

		// Leaderboard routes
		v1.GET("/leaderboard", hm.leaderboardHandler.GetLeaderboard)

		// Dashboard read routes
		dashboards := v1.Group("/dashboards")
		{
			dashboards.GET("/ads", hm.dashboardHandler.GetAds)
			dashboards.GET("/analytics", hm.dashboardHandler.GetAnalytics)
			dashboards.GET("/influencers", hm.dashboardHandler.GetInfluencers)
			dashboards.GET("/investors", hm.dashboardHandler.GetInvestors)
		}
		v1.GET("/quiz-topics", hm.dashboardHandler.GetQuizTopics)

		// Report routes - authenticated users only
		reports := v1.Group("/reports")
		reports.Use(hm.authMiddleware.AuthMiddleware())
		{
			reports.GET("/attempts/export", hm.reportHandler.ExportAttempts)
			reports.GET("/leaderboard/export", hm.reportHandler.ExportLeaderboard)
		}
	}
}
