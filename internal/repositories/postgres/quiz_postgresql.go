package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/cache"
	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuizPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuizRepository {
	return &QuizPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (q *QuizPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}

func (q *QuizPostgreSQL) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Create(quiz).Error; err != nil {
		return err
	}
	cache.InvalidateQuizCache(ctx, q.cacheManager, quiz.ID)
	return nil
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	db := q.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var quiz models.Quiz

	err := q.cacheManager.Quiz.CacheOrExecute(ctx, cacheKey, &quiz, cache.QuizCacheConfig.TTL, func() (interface{}, error) {
		var dbQuiz models.Quiz
		if err := db.WithContext(ctx).First(&dbQuiz, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get quiz: %w", err)
		}
		return &dbQuiz, nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	return &quiz, nil
}

func (q *QuizPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	db := q.getDB(tx)
	var quizzes []*models.Quiz
	var total int64

	query := db.WithContext(ctx).Model(&models.Quiz{})
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}

	return quizzes, total, nil
}

// GetRandom pulls a random sample in the database. RANDOM() keeps the
// sampling server-side instead of loading the whole table.
func (q *QuizPostgreSQL) GetRandom(ctx context.Context, tx *gorm.DB, filters repositories.RandomQuizFilters) ([]*models.Quiz, error) {
	db := q.getDB(tx)
	var quizzes []*models.Quiz

	query := db.WithContext(ctx).Model(&models.Quiz{})
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if len(filters.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filters.ExcludeIDs)
	}

	count := filters.Count
	if count <= 0 {
		count = 10
	}

	if err := query.Order("RANDOM()").Limit(count).Find(&quizzes).Error; err != nil {
		return nil, err
	}

	return quizzes, nil
}
