package dto

import (
	"time"

	"github.com/edugenius/edugenius-api/internal/models"
)

// LearningStyleResponse exposes the VARK counters and the derived dominant style.
type LearningStyleResponse struct {
	Visual        int    `json:"visual"`
	Auditory      int    `json:"auditory"`
	Reading       int    `json:"reading"`
	Kinesthetic   int    `json:"kinesthetic"`
	DominantStyle string `json:"dominant_style"`
}

// UserResponse is the public profile representation.
type UserResponse struct {
	ID            uint                  `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	School        string                `json:"school,omitempty"`
	GradeLevel    string                `json:"grade_level,omitempty"`
	Subjects      []string              `json:"subjects,omitempty"`
	LearningStyle LearningStyleResponse `json:"learning_style"`
	CreatedAt     time.Time             `json:"created_at"`
}

// NewUserResponse maps a user model into its response representation.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		School:     user.School,
		GradeLevel: user.GradeLevel,
		Subjects:   user.SubjectList(),
		LearningStyle: LearningStyleResponse{
			Visual:        user.LearningStyle.Visual,
			Auditory:      user.LearningStyle.Auditory,
			Reading:       user.LearningStyle.Reading,
			Kinesthetic:   user.LearningStyle.Kinesthetic,
			DominantStyle: user.LearningStyle.DominantStyle,
		},
		CreatedAt: user.CreatedAt,
	}
}

// ProfileUpdateRequest is the payload for editing profile fields.
type ProfileUpdateRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=2,max=255"`
	School     *string  `json:"school" validate:"omitempty,max=255"`
	GradeLevel *string  `json:"grade_level" validate:"omitempty,max=64"`
	Subjects   []string `json:"subjects" validate:"omitempty,dive,min=1,max=128"`
}

// AssessmentQuestionResponse is one generated learning-style question.
type AssessmentQuestionResponse struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// AssessmentAnswer pairs an assessment question with the chosen answer.
type AssessmentAnswer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// AssessmentSubmitRequest carries the student's assessment responses.
type AssessmentSubmitRequest struct {
	Responses []AssessmentAnswer `json:"responses" validate:"required,min=1,dive"`
}

// LearningStyleResult is returned after an assessment has been analysed.
type LearningStyleResult struct {
	LearningStyle LearningStyleResponse `json:"learning_style"`
	Summary       string                `json:"summary,omitempty"`
}

// DashboardResponse aggregates per-user study statistics.
type DashboardResponse struct {
	MaterialCount       int64   `json:"material_count"`
	QuizCount           int     `json:"quiz_count"`
	SubmittedQuizCount  int     `json:"submitted_quiz_count"`
	AveragePercentage   float64 `json:"average_percentage"`
	StudyPlanCount      int     `json:"study_plan_count"`
	AveragePlanProgress int     `json:"average_plan_progress"`
	DominantStyle       string  `json:"dominant_style"`
}

// ActivityResponse is one activity feed entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityListResponse is a paginated activity feed.
type ActivityListResponse struct {
	Entries []ActivityResponse `json:"entries"`
	Total   int64              `json:"total"`
}

// NewActivityResponse maps an activity model into its response representation.
func NewActivityResponse(entry models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:         entry.ID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   entry.Metadata,
		CreatedAt:  entry.CreatedAt,
	}
}
