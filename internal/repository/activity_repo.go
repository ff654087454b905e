package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/models"
)

// ActivityRepository persists user activity feed entries.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.Activity) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Activity, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, entry *models.Activity) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Activity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Activity{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var entries []models.Activity
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
