package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

// ErrPlanNotFound covers both absent plans and plans owned by someone else.
var ErrPlanNotFound = errors.New("study plan not found")

// ErrSessionNotFound indicates the session id does not exist in the plan.
var ErrSessionNotFound = errors.New("session not found")

// StudyPlanService generates plans and tracks per-session completion.
type StudyPlanService interface {
	Create(ctx context.Context, userID uint, payload dto.StudyPlanCreateRequest) (dto.StudyPlanResponse, error)
	List(ctx context.Context, userID uint) ([]dto.StudyPlanResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.StudyPlanResponse, error)
	UpdateSession(ctx context.Context, userID, id uint, sessionID string, payload dto.SessionUpdateRequest) (dto.StudyPlanResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type studyPlanService struct {
	plans     repository.StudyPlanRepository
	materials repository.MaterialRepository
	generator ai.Generator
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudyPlanService constructs a StudyPlanService instance.
func NewStudyPlanService(plans repository.StudyPlanRepository, materials repository.MaterialRepository, generator ai.Generator, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) StudyPlanService {
	return &studyPlanService{
		plans:     plans,
		materials: materials,
		generator: generator,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		activity:  activity,
		logger:    logger.With().Str("component", "study_plan_service").Logger(),
		now:       time.Now,
	}
}

func (s *studyPlanService) Create(ctx context.Context, userID uint, payload dto.StudyPlanCreateRequest) (dto.StudyPlanResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudyPlanResponse{}, err
	}

	materials, err := s.materials.GetOwnedByIDs(ctx, userID, payload.MaterialIDs)
	if err != nil {
		return dto.StudyPlanResponse{}, err
	}
	if len(materials) == 0 {
		return dto.StudyPlanResponse{}, ErrMaterialNotFound
	}

	briefs := make([]ai.MaterialBrief, 0, len(materials))
	materialIDs := make([]uint, 0, len(materials))
	for _, material := range materials {
		briefs = append(briefs, ai.MaterialBrief{
			ID:      material.ID,
			Title:   material.Title,
			Summary: material.Summary,
		})
		materialIDs = append(materialIDs, material.ID)
	}

	generated, err := s.generator.GenerateStudyPlan(ctx, ai.StudyPlanInput{
		Subject:      payload.Subject,
		ExamDate:     payload.ExamDate,
		DailyMinutes: payload.DailyMinutes,
		Materials:    briefs,
	})
	if err != nil {
		return dto.StudyPlanResponse{}, fmt.Errorf("failed to generate study plan: %w", err)
	}

	title := payload.Title
	if title == "" {
		title = generated.Title
	}

	examDate := payload.ExamDate
	plan := models.StudyPlan{
		UserID:   userID,
		Title:    title,
		Subject:  payload.Subject,
		ExamDate: &examDate,
	}
	plan.SetMaterialIDs(materialIDs)
	plan.SetSessions(s.mapSessions(generated.Sessions))

	if err := s.plans.Create(ctx, &plan); err != nil {
		return dto.StudyPlanResponse{}, err
	}

	s.logger.Info().Uint("plan_id", plan.ID).Uint("user_id", userID).Int("sessions", len(generated.Sessions)).Msg("study plan created")

	s.activity.Record(ctx, ActivityEntry{
		UserID:     userID,
		Action:     "created",
		EntityType: "study_plan",
		EntityID:   &plan.ID,
		Metadata:   map[string]interface{}{"title": plan.Title, "subject": plan.Subject},
	})

	return dto.NewStudyPlanResponse(plan), nil
}

func (s *studyPlanService) List(ctx context.Context, userID uint) ([]dto.StudyPlanResponse, error) {
	plans, err := s.plans.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudyPlanResponseSlice(plans), nil
}

func (s *studyPlanService) Get(ctx context.Context, userID, id uint) (dto.StudyPlanResponse, error) {
	plan, err := s.ownedPlan(ctx, userID, id)
	if err != nil {
		return dto.StudyPlanResponse{}, err
	}

	return dto.NewStudyPlanResponse(plan), nil
}

// UpdateSession applies completion/notes to one session. Progress needs no
// explicit recomputation: it is derived from the sessions document whenever a
// response is built.
func (s *studyPlanService) UpdateSession(ctx context.Context, userID, id uint, sessionID string, payload dto.SessionUpdateRequest) (dto.StudyPlanResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudyPlanResponse{}, err
	}

	plan, err := s.ownedPlan(ctx, userID, id)
	if err != nil {
		return dto.StudyPlanResponse{}, err
	}

	sessions := plan.SessionList()
	found := false
	for i, session := range sessions {
		if session.ID != sessionID {
			continue
		}

		if payload.Completed != nil {
			sessions[i].Completed = *payload.Completed
		}
		if payload.Notes != nil {
			sessions[i].Notes = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Notes))
		}
		found = true
		break
	}

	if !found {
		return dto.StudyPlanResponse{}, ErrSessionNotFound
	}

	plan.SetSessions(sessions)

	if err := s.plans.Update(ctx, &plan); err != nil {
		return dto.StudyPlanResponse{}, err
	}

	return dto.NewStudyPlanResponse(plan), nil
}

func (s *studyPlanService) Delete(ctx context.Context, userID, id uint) error {
	plan, err := s.ownedPlan(ctx, userID, id)
	if err != nil {
		return err
	}

	return s.plans.Delete(ctx, plan.ID)
}

func (s *studyPlanService) ownedPlan(ctx context.Context, userID, id uint) (models.StudyPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudyPlan{}, ErrPlanNotFound
		}
		return models.StudyPlan{}, err
	}

	if plan.UserID != userID {
		return models.StudyPlan{}, ErrPlanNotFound
	}

	return plan, nil
}

// mapSessions assigns stable ids and concrete dates to generated sessions.
// Day indices are 1-based offsets from today.
func (s *studyPlanService) mapSessions(generated []ai.GeneratedSession) []models.Session {
	today := s.now().UTC().Truncate(24 * time.Hour)

	sessions := make([]models.Session, 0, len(generated))
	for _, item := range generated {
		day := item.Day
		if day < 1 {
			day = 1
		}

		sessions = append(sessions, models.Session{
			ID:              uuid.NewString(),
			Day:             day,
			Date:            today.AddDate(0, 0, day-1),
			Title:           item.Title,
			DurationMinutes: item.DurationMinutes,
			MaterialIDs:     item.MaterialIDs,
			Activities:      item.Activities,
		})
	}

	return sessions
}
