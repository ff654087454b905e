package ai

import (
	"context"
	"time"
)

// MaterialBrief is the slice of material metadata handed to prompt builders.
type MaterialBrief struct {
	ID      uint
	Title   string
	Summary string
}

// QuizInput describes the quiz the model should author.
type QuizInput struct {
	Materials     []MaterialBrief
	MaterialText  string
	Difficulty    string
	QuestionCount int
}

// GeneratedOption is one authored answer option.
type GeneratedOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// GeneratedQuestion is one authored quiz item.
type GeneratedQuestion struct {
	Type          string            `json:"type"`
	Text          string            `json:"text"`
	Options       []GeneratedOption `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
	Points        int               `json:"points"`
}

// GeneratedQuiz is the full authored assessment.
type GeneratedQuiz struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   []GeneratedQuestion `json:"questions"`
}

// ShortAnswerItem is one free-text answer queued for batch grading.
type ShortAnswerItem struct {
	QuestionID      string
	Question        string
	ReferenceAnswer string
	StudentAnswer   string
	MaxPoints       int
}

// ShortAnswerGrade is the grading verdict for one short answer.
type ShortAnswerGrade struct {
	QuestionID    string `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	PointsAwarded int    `json:"points_awarded"`
	Feedback      string `json:"feedback"`
}

// StudyPlanInput describes the schedule the model should generate.
type StudyPlanInput struct {
	Subject      string
	ExamDate     time.Time
	DailyMinutes int
	Materials    []MaterialBrief
}

// GeneratedSession is one scheduled study block.
type GeneratedSession struct {
	Day             int      `json:"day"`
	Title           string   `json:"title"`
	DurationMinutes int      `json:"duration_minutes"`
	MaterialIDs     []uint   `json:"material_ids,omitempty"`
	Activities      []string `json:"activities,omitempty"`
}

// GeneratedStudyPlan is the full generated schedule.
type GeneratedStudyPlan struct {
	Title    string             `json:"title"`
	Sessions []GeneratedSession `json:"sessions"`
}

// AssessmentQuestion is one learning-style assessment item.
type AssessmentQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// AssessmentResponse pairs an assessment question with the student's answer.
type AssessmentResponse struct {
	Question string
	Answer   string
}

// LearningStyleAnalysis contains the per-category increments derived from
// assessment responses.
type LearningStyleAnalysis struct {
	Visual      int    `json:"visual"`
	Auditory    int    `json:"auditory"`
	Reading     int    `json:"reading"`
	Kinesthetic int    `json:"kinesthetic"`
	Summary     string `json:"summary"`
}

// QuizOutcome is one submitted quiz result forwarded for grade prediction.
type QuizOutcome struct {
	Title       string
	Score       int
	TotalPoints int
	Percentage  int
	CompletedAt time.Time
}

// GradePrediction is the model's forecast over past quiz outcomes.
type GradePrediction struct {
	PredictedScore  float64  `json:"predicted_score"`
	PredictedGrade  string   `json:"predicted_grade"`
	Confidence      float64  `json:"confidence"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// MaterialSummary is the metadata derived from an uploaded document.
type MaterialSummary struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	Tags       []string `json:"tags"`
	Subject    string   `json:"subject"`
	Difficulty string   `json:"difficulty"`
}

// Generator describes the generative model behind quiz authoring, grading,
// planning, learning-style analysis, grade prediction and summarization.
type Generator interface {
	GenerateQuiz(ctx context.Context, input QuizInput) (GeneratedQuiz, error)
	GradeShortAnswers(ctx context.Context, items []ShortAnswerItem) ([]ShortAnswerGrade, error)
	GenerateStudyPlan(ctx context.Context, input StudyPlanInput) (GeneratedStudyPlan, error)
	GenerateAssessment(ctx context.Context) ([]AssessmentQuestion, error)
	AnalyzeLearningStyle(ctx context.Context, responses []AssessmentResponse) (LearningStyleAnalysis, error)
	PredictGrade(ctx context.Context, outcomes []QuizOutcome) (GradePrediction, error)
	SummarizeMaterial(ctx context.Context, title, text string) (MaterialSummary, error)
}
