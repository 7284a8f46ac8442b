package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	Type       *models.QuizType        `json:"type"`
	Category   *string                 `json:"category"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	SortBy     string                  `json:"sort_by"`
	SortOrder  string                  `json:"sort_order"`
}

type RandomQuizFilters struct {
	Category   *string                 `json:"category"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	ExcludeIDs []uint                  `json:"exclude_ids"`
	Count      int                     `json:"count"`
}

type AttemptFilters struct {
	UserID    *uint   `json:"user_id"`
	QuizID    *uint   `json:"quiz_id"`
	Category  *string `json:"category"`
	IsCorrect *bool   `json:"is_correct"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

type TopicFilters struct {
	Category   *string                 `json:"category"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	AgeGroup   *string                 `json:"age_group"`
	Search     string                  `json:"search"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type AttemptStats struct {
	TotalAttempts    int     `json:"total_attempts"`
	CorrectAttempts  int     `json:"correct_attempts"`
	TotalPoints      int     `json:"total_points"`
	AverageTimeTaken float64 `json:"average_time_taken"`
}

// ===== DOMAIN REPOSITORY INTERFACES =====

// UserRepository owns the user rows, including the TUTE point ledger.
// A nil tx means the repository's default connection.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)

	// AddTutePoints applies a single atomic increment and returns the
	// new total. Never read-modify-write.
	AddTutePoints(ctx context.Context, tx *gorm.DB, userID uint, points int) (int, error)

	TopByPoints(ctx context.Context, tx *gorm.DB, limit int) ([]*models.User, error)
	TopSchools(ctx context.Context, tx *gorm.DB, limit int) ([]*models.SchoolRank, error)
}

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*models.Quiz, int64, error)
	GetRandom(ctx context.Context, tx *gorm.DB, filters RandomQuizFilters) ([]*models.Quiz, error)
}

// AttemptRepository is append-only. There is no update or delete.
type AttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error)
	GetByIdempotencyKey(ctx context.Context, tx *gorm.DB, key string) (*models.QuizAttempt, error)
	List(ctx context.Context, tx *gorm.DB, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	GetStatsByUser(ctx context.Context, tx *gorm.DB, userID uint) (*AttemptStats, error)
}

type LessonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error)
	GetByKey(ctx context.Context, tx *gorm.DB, key string) (*models.Lesson, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*models.Lesson, int64, error)
}

type ProgressRepository interface {
	// Get returns ErrNotFound when no row exists for the pair; callers
	// decide whether that maps to a default or an error.
	Get(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.LessonProgress, error)

	// Upsert inserts or replaces the (user, lesson) row in one
	// statement using the store's conflict clause.
	Upsert(ctx context.Context, tx *gorm.DB, progress *models.LessonProgress) error

	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.LessonProgress, error)
}

type TopicRepository interface {
	Create(ctx context.Context, tx *gorm.DB, topic *models.QuizTopic) error
	List(ctx context.Context, tx *gorm.DB, filters TopicFilters) ([]*models.QuizTopic, int64, error)
}
