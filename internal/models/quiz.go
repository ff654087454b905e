package models

import (
	"encoding/json"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types supported by the quiz engine.
const (
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeShortAnswer    = "short-answer"
)

// Option is one selectable answer for an objective question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a single quiz item. Objective questions carry options; short
// answer questions carry a reference answer instead.
type Question struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Text          string   `json:"text"`
	Options       []Option `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Points        int      `json:"points"`
}

// AnswerRecord is the per-question grading detail attached after submission.
type AnswerRecord struct {
	QuestionID     string  `json:"question_id"`
	SelectedOption *string `json:"selected_option"`
	TextAnswer     string  `json:"text_answer,omitempty"`
	IsCorrect      bool    `json:"is_correct"`
	PointsAwarded  int     `json:"points_awarded"`
	Graded         bool    `json:"graded"`
	Feedback       string  `json:"feedback,omitempty"`
}

// QuizResult is the one-time grading outcome for a submitted quiz.
type QuizResult struct {
	Answers     []AnswerRecord `json:"answers"`
	Score       int            `json:"score"`
	Percentage  int            `json:"percentage"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Quiz is a generated assessment owned by one user. Questions and the result
// are stored as JSON documents so each save stays a single-row write.
type Quiz struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Difficulty  string         `gorm:"size:32;not null" json:"difficulty"`
	TimeLimit   int            `gorm:"not null" json:"time_limit"`
	MaterialIDs datatypes.JSON `gorm:"type:json" json:"-"`
	Questions   datatypes.JSON `gorm:"type:json" json:"-"`
	TotalPoints int            `gorm:"not null" json:"total_points"`
	IsSubmitted bool           `gorm:"not null;default:false" json:"is_submitted"`
	Result      datatypes.JSON `gorm:"type:json" json:"-"`
	SubmittedAt *time.Time     `json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// BeforeSave keeps TotalPoints in step with the questions document.
func (q *Quiz) BeforeSave(tx *gorm.DB) error {
	total := 0
	for _, question := range q.QuestionList() {
		total += question.Points
	}
	q.TotalPoints = total
	return nil
}

// SetQuestions serializes the question list into the JSON storage column.
func (q *Quiz) SetQuestions(questions []Question) {
	data, err := json.Marshal(questions)
	if err != nil {
		q.Questions = datatypes.JSON([]byte("[]"))
		return
	}
	q.Questions = datatypes.JSON(data)
}

// QuestionList deserializes the stored questions into a Go slice.
func (q Quiz) QuestionList() []Question {
	if len(q.Questions) == 0 {
		return nil
	}

	var questions []Question
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil
	}

	return questions
}

// SetMaterialIDs serializes the source material ids into the JSON storage column.
func (q *Quiz) SetMaterialIDs(ids []uint) {
	data, err := json.Marshal(ids)
	if err != nil {
		q.MaterialIDs = datatypes.JSON([]byte("[]"))
		return
	}
	q.MaterialIDs = datatypes.JSON(data)
}

// MaterialIDList deserializes the source material ids into a Go slice.
func (q Quiz) MaterialIDList() []uint {
	if len(q.MaterialIDs) == 0 {
		return nil
	}

	var ids []uint
	if err := json.Unmarshal(q.MaterialIDs, &ids); err != nil {
		return nil
	}

	return ids
}

// SetResult serializes the grading outcome into the JSON storage column.
func (q *Quiz) SetResult(result QuizResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	q.Result = datatypes.JSON(data)
	return nil
}

// ResultDetail deserializes the stored grading outcome, or nil before submission.
func (q Quiz) ResultDetail() *QuizResult {
	if len(q.Result) == 0 {
		return nil
	}

	var result QuizResult
	if err := json.Unmarshal(q.Result, &result); err != nil {
		return nil
	}

	return &result
}

// ScorePercentage returns the rounded score percentage. A quiz whose questions
// carry no points reports zero instead of dividing by zero.
func ScorePercentage(score, totalPoints int) int {
	if totalPoints <= 0 {
		return 0
	}

	return int(math.Round(100 * float64(score) / float64(totalPoints)))
}
