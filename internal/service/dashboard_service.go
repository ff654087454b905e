package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
)

// DashboardService produces aggregated per-user study metrics.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uint) (dto.DashboardResponse, error)
}

type dashboardService struct {
	users     repository.UserRepository
	materials repository.MaterialRepository
	quizzes   repository.QuizRepository
	plans     repository.StudyPlanRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator. The cache client is
// optional; a nil client disables caching.
func NewDashboardService(users repository.UserRepository, materials repository.MaterialRepository, quizzes repository.QuizRepository, plans repository.StudyPlanRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		users:     users,
		materials: materials,
		quizzes:   quizzes,
		plans:     plans,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID uint) (dto.DashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:user:%d", userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	materialCount, err := s.materials.CountByOwner(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	quizzes, err := s.quizzes.ListByOwner(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	plans, err := s.plans.ListByOwner(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := buildDashboard(user, materialCount, quizzes, plans)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func buildDashboard(user models.User, materialCount int64, quizzes []models.Quiz, plans []models.StudyPlan) dto.DashboardResponse {
	response := dto.DashboardResponse{
		MaterialCount:  materialCount,
		QuizCount:      len(quizzes),
		StudyPlanCount: len(plans),
		DominantStyle:  user.LearningStyle.DominantStyle,
	}

	percentageTotal := 0
	for _, quiz := range quizzes {
		if !quiz.IsSubmitted {
			continue
		}
		result := quiz.ResultDetail()
		if result == nil {
			continue
		}
		response.SubmittedQuizCount++
		percentageTotal += result.Percentage
	}
	if response.SubmittedQuizCount > 0 {
		response.AveragePercentage = float64(percentageTotal) / float64(response.SubmittedQuizCount)
	}

	progressTotal := 0
	for _, plan := range plans {
		progressTotal += plan.CalculateProgress()
	}
	if len(plans) > 0 {
		response.AveragePlanProgress = progressTotal / len(plans)
	}

	return response
}
