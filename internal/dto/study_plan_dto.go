package dto

import (
	"time"

	"github.com/edugenius/edugenius-api/internal/models"
)

// StudyPlanCreateRequest is the payload for generating a study plan.
type StudyPlanCreateRequest struct {
	Title        string    `json:"title" validate:"omitempty,max=255"`
	Subject      string    `json:"subject" validate:"required,max=128"`
	ExamDate     time.Time `json:"exam_date" validate:"required"`
	MaterialIDs  []uint    `json:"material_ids" validate:"required,min=1"`
	DailyMinutes int       `json:"daily_minutes" validate:"omitempty,min=10,max=720"`
}

// SessionUpdateRequest toggles completion or annotates a single session.
type SessionUpdateRequest struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// SessionResponse is one scheduled study block.
type SessionResponse struct {
	ID              string    `json:"id"`
	Day             int       `json:"day"`
	Date            time.Time `json:"date"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	MaterialIDs     []uint    `json:"material_ids,omitempty"`
	Activities      []string  `json:"activities,omitempty"`
	Completed       bool      `json:"completed"`
	Notes           string    `json:"notes,omitempty"`
}

// StudyPlanResponse is the API representation of a study plan. Progress is
// derived from the sessions at response-build time.
type StudyPlanResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Subject     string            `json:"subject"`
	ExamDate    *time.Time        `json:"exam_date,omitempty"`
	MaterialIDs []uint            `json:"material_ids,omitempty"`
	Sessions    []SessionResponse `json:"sessions"`
	Progress    int               `json:"progress"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewStudyPlanResponse maps a plan model into its response representation.
func NewStudyPlanResponse(plan models.StudyPlan) StudyPlanResponse {
	sessions := plan.SessionList()
	sessionResponses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		sessionResponses = append(sessionResponses, SessionResponse{
			ID:              session.ID,
			Day:             session.Day,
			Date:            session.Date,
			Title:           session.Title,
			DurationMinutes: session.DurationMinutes,
			MaterialIDs:     session.MaterialIDs,
			Activities:      session.Activities,
			Completed:       session.Completed,
			Notes:           session.Notes,
		})
	}

	return StudyPlanResponse{
		ID:          plan.ID,
		Title:       plan.Title,
		Subject:     plan.Subject,
		ExamDate:    plan.ExamDate,
		MaterialIDs: plan.MaterialIDList(),
		Sessions:    sessionResponses,
		Progress:    plan.CalculateProgress(),
		CreatedAt:   plan.CreatedAt,
	}
}

// NewStudyPlanResponseSlice maps a list of plans into responses.
func NewStudyPlanResponseSlice(plans []models.StudyPlan) []StudyPlanResponse {
	responses := make([]StudyPlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, NewStudyPlanResponse(plan))
	}
	return responses
}
