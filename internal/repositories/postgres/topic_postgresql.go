package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

type TopicPostgreSQL struct {
	db *gorm.DB
}

func NewTopicPostgreSQL(db *gorm.DB) repositories.TopicRepository {
	return &TopicPostgreSQL{db: db}
}

func (t *TopicPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}

func (t *TopicPostgreSQL) Create(ctx context.Context, tx *gorm.DB, topic *models.QuizTopic) error {
	db := t.getDB(tx)
	return db.WithContext(ctx).Create(topic).Error
}

func (t *TopicPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.TopicFilters) ([]*models.QuizTopic, int64, error) {
	db := t.getDB(tx)
	var topics []*models.QuizTopic
	var total int64

	query := db.WithContext(ctx).Model(&models.QuizTopic{})
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.AgeGroup != nil {
		query = query.Where("age_group = ?", *filters.AgeGroup)
	}
	if filters.Search != "" {
		needle := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, "created_at", "asc", filters.Limit, filters.Offset)

	if err := query.Find(&topics).Error; err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}
