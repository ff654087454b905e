package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/models"
)

// StudyPlanRepository defines data operations for study plans.
type StudyPlanRepository interface {
	ListByOwner(ctx context.Context, userID uint) ([]models.StudyPlan, error)
	GetByID(ctx context.Context, id uint) (models.StudyPlan, error)
	Create(ctx context.Context, plan *models.StudyPlan) error
	Update(ctx context.Context, plan *models.StudyPlan) error
	Delete(ctx context.Context, id uint) error
}

type studyPlanRepository struct {
	db *gorm.DB
}

// NewStudyPlanRepository instantiates the repository.
func NewStudyPlanRepository(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepository{db: db}
}

func (r *studyPlanRepository) ListByOwner(ctx context.Context, userID uint) ([]models.StudyPlan, error) {
	var plans []models.StudyPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *studyPlanRepository) GetByID(ctx context.Context, id uint) (models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return models.StudyPlan{}, err
	}

	return plan, nil
}

func (r *studyPlanRepository) Create(ctx context.Context, plan *models.StudyPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *studyPlanRepository) Update(ctx context.Context, plan *models.StudyPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *studyPlanRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.StudyPlan{}, id).Error
}
