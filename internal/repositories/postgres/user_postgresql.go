package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

func (u *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return err
	}
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := u.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// AddTutePoints increments the ledger in a single UPDATE. The new
// total is read back afterwards; inside a transaction both statements
// see a consistent row.
func (u *UserPostgreSQL) AddTutePoints(ctx context.Context, tx *gorm.DB, userID uint, points int) (int, error) {
	db := u.getDB(tx)

	result := db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("tute_points", gorm.Expr("tute_points + ?", points))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to add points: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, repositories.ErrNotFound
	}

	var total int
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Pluck("tute_points", &total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read point total: %w", err)
	}

	return total, nil
}

func (u *UserPostgreSQL) TopByPoints(ctx context.Context, tx *gorm.DB, limit int) ([]*models.User, error) {
	db := u.getDB(tx)
	var users []*models.User
	err := db.WithContext(ctx).
		Order("tute_points DESC").
		Order("id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (u *UserPostgreSQL) TopSchools(ctx context.Context, tx *gorm.DB, limit int) ([]*models.SchoolRank, error) {
	db := u.getDB(tx)
	var rows []*models.SchoolRank
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Select("school, SUM(tute_points) AS total_points, COUNT(*) AS member_count").
		Where("school <> ''").
		Group("school").
		Order("total_points DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
