package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

// ErrUserNotFound indicates the account could not be found.
var ErrUserNotFound = errors.New("user not found")

// UserService manages profiles and learning-style assessments.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.UserResponse, error)
	GenerateAssessment(ctx context.Context) ([]dto.AssessmentQuestionResponse, error)
	SubmitAssessment(ctx context.Context, userID uint, payload dto.AssessmentSubmitRequest) (dto.LearningStyleResult, error)
}

type userService struct {
	users     repository.UserRepository
	generator ai.Generator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users repository.UserRepository, generator ai.Generator, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		generator: generator,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		user.Name = *payload.Name
	}
	if payload.School != nil {
		user.School = *payload.School
	}
	if payload.GradeLevel != nil {
		user.GradeLevel = *payload.GradeLevel
	}
	if payload.Subjects != nil {
		user.SetSubjects(payload.Subjects)
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) GenerateAssessment(ctx context.Context) ([]dto.AssessmentQuestionResponse, error) {
	questions, err := s.generator.GenerateAssessment(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssessmentQuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, dto.AssessmentQuestionResponse{
			Text:    question.Text,
			Options: question.Options,
		})
	}

	return responses, nil
}

// SubmitAssessment forwards the responses for analysis and folds the returned
// counters into the user's accumulated learning style. The dominant style is
// recomputed by the model hook on save.
func (s *userService) SubmitAssessment(ctx context.Context, userID uint, payload dto.AssessmentSubmitRequest) (dto.LearningStyleResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LearningStyleResult{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LearningStyleResult{}, ErrUserNotFound
		}
		return dto.LearningStyleResult{}, err
	}

	responses := make([]ai.AssessmentResponse, 0, len(payload.Responses))
	for _, response := range payload.Responses {
		responses = append(responses, ai.AssessmentResponse{
			Question: response.Question,
			Answer:   response.Answer,
		})
	}

	analysis, err := s.generator.AnalyzeLearningStyle(ctx, responses)
	if err != nil {
		return dto.LearningStyleResult{}, err
	}

	user.LearningStyle.Visual += analysis.Visual
	user.LearningStyle.Auditory += analysis.Auditory
	user.LearningStyle.Reading += analysis.Reading
	user.LearningStyle.Kinesthetic += analysis.Kinesthetic

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.LearningStyleResult{}, err
	}

	s.logger.Info().Uint("user_id", userID).Str("dominant_style", user.LearningStyle.DominantStyle).Msg("learning style updated")

	return dto.LearningStyleResult{
		LearningStyle: dto.LearningStyleResponse{
			Visual:        user.LearningStyle.Visual,
			Auditory:      user.LearningStyle.Auditory,
			Reading:       user.LearningStyle.Reading,
			Kinesthetic:   user.LearningStyle.Kinesthetic,
			DominantStyle: user.LearningStyle.DominantStyle,
		},
		Summary: analysis.Summary,
	}, nil
}
