package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/models"
)

// ErrAlreadySubmitted is returned when the conditional submit update matches
// no rows because another submission won the race.
var ErrAlreadySubmitted = errors.New("quiz already submitted")

// QuizRepository defines data operations for quizzes.
type QuizRepository interface {
	ListByOwner(ctx context.Context, userID uint) ([]models.Quiz, error)
	ListSubmittedByOwner(ctx context.Context, userID uint) ([]models.Quiz, error)
	GetByID(ctx context.Context, id uint) (models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	SubmitResult(ctx context.Context, id uint, totalPoints int, result datatypes.JSON, submittedAt time.Time) error
	Delete(ctx context.Context, id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository instantiates the repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}

	return quizzes, nil
}

func (r *quizRepository) ListSubmittedByOwner(ctx context.Context, userID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("is_submitted = ?", true).
		Order("submitted_at ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}

	return quizzes, nil
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Save(quiz).Error
}

// SubmitResult latches the quiz as submitted with a single conditional update
// so two concurrent submissions cannot both pass the pre-check.
func (r *quizRepository) SubmitResult(ctx context.Context, id uint, totalPoints int, result datatypes.JSON, submittedAt time.Time) error {
	update := r.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", id).
		Where("is_submitted = ?", false).
		Updates(map[string]interface{}{
			"is_submitted": true,
			"total_points": totalPoints,
			"result":       result,
			"submitted_at": submittedAt,
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return ErrAlreadySubmitted
	}

	return nil
}

func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Quiz{}, id).Error
}
