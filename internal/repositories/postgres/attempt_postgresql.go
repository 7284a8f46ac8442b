package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

// AttemptPostgreSQL stores submission records. Attempts are append
// only, so the surface is insert and read.
type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return err
	}
	return nil
}

func (a *AttemptPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error) {
	db := a.getDB(tx)
	var attempt models.QuizAttempt
	if err := db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) GetByIdempotencyKey(ctx context.Context, tx *gorm.DB, key string) (*models.QuizAttempt, error) {
	db := a.getDB(tx)
	var attempt models.QuizAttempt
	if err := db.WithContext(ctx).Where("idempotency_key = ?", key).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	db := a.getDB(tx)
	var attempts []*models.QuizAttempt
	var total int64

	query := db.WithContext(ctx).Model(&models.QuizAttempt{})
	query = a.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Preload("Quiz").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

func (a *AttemptPostgreSQL) GetStatsByUser(ctx context.Context, tx *gorm.DB, userID uint) (*repositories.AttemptStats, error) {
	db := a.getDB(tx)

	var row struct {
		TotalAttempts    int
		CorrectAttempts  int
		TotalPoints      int
		AverageTimeTaken float64
	}

	err := db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Select(
			"COUNT(*) AS total_attempts, "+
				"COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct_attempts, "+
				"COALESCE(SUM(points_earned), 0) AS total_points, "+
				"COALESCE(AVG(time_taken), 0) AS average_time_taken").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &repositories.AttemptStats{
		TotalAttempts:    row.TotalAttempts,
		CorrectAttempts:  row.CorrectAttempts,
		TotalPoints:      row.TotalPoints,
		AverageTimeTaken: row.AverageTimeTaken,
	}, nil
}

func (a *AttemptPostgreSQL) applyFilters(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.IsCorrect != nil {
		query = query.Where("is_correct = ?", *filters.IsCorrect)
	}
	if filters.Category != nil {
		query = query.Where("quiz_id IN (?)",
			a.db.Model(&models.Quiz{}).Select("id").Where("category = ?", *filters.Category))
	}
	return query
}
