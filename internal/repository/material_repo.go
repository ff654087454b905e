package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/models"
)

// MaterialRepository defines data operations for study materials.
type MaterialRepository interface {
	ListByOwner(ctx context.Context, userID uint) ([]models.StudyMaterial, error)
	GetByID(ctx context.Context, id uint) (models.StudyMaterial, error)
	GetOwnedByIDs(ctx context.Context, userID uint, ids []uint) ([]models.StudyMaterial, error)
	Create(ctx context.Context, material *models.StudyMaterial) error
	Delete(ctx context.Context, id uint) error
	CountByOwner(ctx context.Context, userID uint) (int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository instantiates the repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) ListByOwner(ctx context.Context, userID uint) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&materials).Error; err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (models.StudyMaterial, error) {
	var material models.StudyMaterial
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return models.StudyMaterial{}, err
	}

	return material, nil
}

func (r *materialRepository) GetOwnedByIDs(ctx context.Context, userID uint, ids []uint) ([]models.StudyMaterial, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var materials []models.StudyMaterial
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		Find(&materials).Error; err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *materialRepository) Create(ctx context.Context, material *models.StudyMaterial) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.StudyMaterial{}, id).Error
}

func (r *materialRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StudyMaterial{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
