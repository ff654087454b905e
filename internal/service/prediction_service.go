package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

// ErrNotEnoughResults indicates fewer than two submitted quizzes exist.
var ErrNotEnoughResults = errors.New("at least two submitted quizzes are required")

// PredictionService forecasts exam grades from submitted quiz results.
type PredictionService interface {
	PredictGrade(ctx context.Context, userID uint) (dto.GradePredictionResponse, error)
}

type predictionService struct {
	quizzes   repository.QuizRepository
	generator ai.Generator
	logger    zerolog.Logger
}

// NewPredictionService constructs a PredictionService instance.
func NewPredictionService(quizzes repository.QuizRepository, generator ai.Generator, logger zerolog.Logger) PredictionService {
	return &predictionService{
		quizzes:   quizzes,
		generator: generator,
		logger:    logger.With().Str("component", "prediction_service").Logger(),
	}
}

// PredictGrade shapes the caller's submitted quiz outcomes and delegates the
// forecast to the model. There is no local algorithm beyond the precondition.
func (s *predictionService) PredictGrade(ctx context.Context, userID uint) (dto.GradePredictionResponse, error) {
	quizzes, err := s.quizzes.ListSubmittedByOwner(ctx, userID)
	if err != nil {
		return dto.GradePredictionResponse{}, err
	}

	if len(quizzes) < 2 {
		return dto.GradePredictionResponse{}, ErrNotEnoughResults
	}

	outcomes := make([]ai.QuizOutcome, 0, len(quizzes))
	for _, quiz := range quizzes {
		result := quiz.ResultDetail()
		if result == nil {
			continue
		}

		completedAt := result.CompletedAt
		if quiz.SubmittedAt != nil {
			completedAt = *quiz.SubmittedAt
		}

		outcomes = append(outcomes, ai.QuizOutcome{
			Title:       quiz.Title,
			Score:       result.Score,
			TotalPoints: quiz.TotalPoints,
			Percentage:  result.Percentage,
			CompletedAt: completedAt.UTC().Truncate(time.Second),
		})
	}

	if len(outcomes) < 2 {
		return dto.GradePredictionResponse{}, ErrNotEnoughResults
	}

	prediction, err := s.generator.PredictGrade(ctx, outcomes)
	if err != nil {
		return dto.GradePredictionResponse{}, fmt.Errorf("failed to predict grade: %w", err)
	}

	return dto.GradePredictionResponse{
		PredictedScore:  prediction.PredictedScore,
		PredictedGrade:  prediction.PredictedGrade,
		Confidence:      prediction.Confidence,
		Strengths:       prediction.Strengths,
		Weaknesses:      prediction.Weaknesses,
		Recommendations: prediction.Recommendations,
	}, nil
}
