package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

func (p *ProgressPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}

func (p *ProgressPostgreSQL) Get(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.LessonProgress, error) {
	db := p.getDB(tx)
	var progress models.LessonProgress
	err := db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// Upsert writes the whole mutable state of the (user, lesson) row in
// one INSERT ... ON CONFLICT statement. Last writer wins.
func (p *ProgressPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, progress *models.LessonProgress) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_block_index",
				"completed_blocks",
				"quiz_answers",
				"video_watch_time",
				"points_earned",
				"is_completed",
				"started_at",
				"completed_at",
				"updated_at",
			}),
		}).
		Create(progress).Error
}

func (p *ProgressPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.LessonProgress, error) {
	db := p.getDB(tx)
	var rows []*models.LessonProgress
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}
