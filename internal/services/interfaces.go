package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/tutelearn/platform-service/internal/models"
)

// DashboardFilters holds the query parameters shared by the dashboard
// read endpoints. Empty fields match everything.
type DashboardFilters struct {
	Type       string
	Sponsor    string
	Tier       string
	Category   string
	Difficulty string
	AgeGroup   string
	Search     string
	Limit      int
}

// Leaderboard types accepted by LeaderboardService.Get.
const (
	LeaderboardUsers   = "users"
	LeaderboardSchools = "schools"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

	// ParseToken validates a bearer token and returns the user ID it
	// was issued for.
	ParseToken(tokenString string) (uint, error)
}

type QuizService interface {
	// Submit grades and records one attempt. The attempt row and any
	// point award commit in the same transaction.
	Submit(ctx context.Context, req *models.SubmitQuizRequest) (*models.SubmitQuizResponse, error)

	// GetRandom returns up to limit random quizzes with grading
	// material stripped.
	GetRandom(ctx context.Context, limit int, category string) ([]models.QuizDelivery, error)
}

type LessonService interface {
	// GetProgress returns the stored row for (user, lesson), or the
	// zero-valued default when the user has not touched the lesson.
	GetProgress(ctx context.Context, userID uint, lessonKey string) (*models.ProgressResponse, error)

	// SaveProgress upserts the (user, lesson) row. The first save
	// with isCompleted=true awards the earned points.
	SaveProgress(ctx context.Context, userID uint, lessonKey string, req *models.SaveProgressRequest) (*models.ProgressResponse, error)
}

type LeaderboardService interface {
	// Get dispatches on boardType; unknown types return
	// ErrInvalidLeaderboard.
	Get(ctx context.Context, boardType string, limit int) (interface{}, error)

	Users(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Schools(ctx context.Context, limit int) ([]models.SchoolRank, error)

	// RecordPoints mirrors a user's new total into the ranking sets.
	RecordPoints(ctx context.Context, user *models.User) error
}

type DashboardService interface {
	Ads(ctx context.Context, filters DashboardFilters) []models.AdCampaign
	Analytics(ctx context.Context, filters DashboardFilters) []models.AnalyticsReport
	Influencers(ctx context.Context, filters DashboardFilters) []models.Influencer
	Investors(ctx context.Context, filters DashboardFilters) []models.Investor
	QuizTopics(ctx context.Context, filters DashboardFilters) ([]*models.QuizTopic, error)
}

type ReportService interface {
	ExportAttempts(ctx context.Context, category string) (*excelize.File, error)
	ExportLeaderboard(ctx context.Context, boardType string) (*excelize.File, error)
}

// ServiceManager wires the services together and owns their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Quiz() QuizService
	Lesson() LessonService
	Leaderboard() LeaderboardService
	Dashboard() DashboardService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
