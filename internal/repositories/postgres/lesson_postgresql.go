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

type LessonPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewLessonPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.LessonRepository {
	return &LessonPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (l *LessonPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return l.db
}

func (l *LessonPostgreSQL) Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	db := l.getDB(tx)
	if err := db.WithContext(ctx).Create(lesson).Error; err != nil {
		return err
	}
	cache.InvalidateLessonCache(ctx, l.cacheManager, lesson.Key)
	return nil
}

func (l *LessonPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lesson, error) {
	db := l.getDB(tx)
	var lesson models.Lesson
	if err := db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (l *LessonPostgreSQL) GetByKey(ctx context.Context, tx *gorm.DB, key string) (*models.Lesson, error) {
	db := l.getDB(tx)
	cacheKey := fmt.Sprintf("key:%s", key)
	var lesson models.Lesson

	err := l.cacheManager.Lesson.CacheOrExecute(ctx, cacheKey, &lesson, cache.LessonCacheConfig.TTL, func() (interface{}, error) {
		var dbLesson models.Lesson
		if err := db.WithContext(ctx).Where("key = ?", key).First(&dbLesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get lesson: %w", err)
		}
		return &dbLesson, nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	return &lesson, nil
}

func (l *LessonPostgreSQL) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*models.Lesson, int64, error) {
	db := l.getDB(tx)
	var lessons []*models.Lesson
	var total int64

	query := db.WithContext(ctx).Model(&models.Lesson{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, "created_at", "asc", limit, offset)
	if err := query.Find(&lessons).Error; err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}
