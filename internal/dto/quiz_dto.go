package dto

import (
	"time"

	"github.com/edugenius/edugenius-api/internal/models"
)

// QuizGenerateRequest is the payload for authoring a quiz from materials.
type QuizGenerateRequest struct {
	MaterialIDs   []uint `json:"material_ids" validate:"required,min=1"`
	Title         string `json:"title" validate:"omitempty,max=255"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=50"`
	TimeLimit     int    `json:"time_limit" validate:"omitempty,min=1,max=480"`
}

// OptionPayload is one answer option supplied on quiz edit.
type OptionPayload struct {
	ID        string `json:"id"`
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionPayload is one question supplied on quiz edit.
type QuestionPayload struct {
	ID            string          `json:"id"`
	Type          string          `json:"type" validate:"required,oneof=multiple-choice true-false short-answer"`
	Text          string          `json:"text" validate:"required"`
	Options       []OptionPayload `json:"options" validate:"omitempty,dive"`
	CorrectAnswer string          `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	Points        int             `json:"points" validate:"omitempty,min=0"`
}

// QuizUpdateRequest applies a partial edit to an unsubmitted quiz.
type QuizUpdateRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string           `json:"description" validate:"omitempty,max=2000"`
	TimeLimit   *int              `json:"time_limit" validate:"omitempty,min=1,max=480"`
	Questions   []QuestionPayload `json:"questions" validate:"omitempty,dive"`
}

// QuizSubmitRequest carries the caller's answers, one entry per question in
// question order. Objective answers are option ids, short answers free text.
type QuizSubmitRequest struct {
	Answers []string `json:"answers" validate:"required"`
}

// OptionResponse is one answer option. IsCorrect is withheld until submission.
type OptionResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

// QuestionResponse is one quiz item. CorrectAnswer and Explanation are
// withheld until submission.
type QuestionResponse struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Text          string           `json:"text"`
	Options       []OptionResponse `json:"options,omitempty"`
	CorrectAnswer string           `json:"correct_answer,omitempty"`
	Explanation   string           `json:"explanation,omitempty"`
	Points        int              `json:"points"`
}

// AnswerRecordResponse is per-question grading detail.
type AnswerRecordResponse struct {
	QuestionID     string  `json:"question_id"`
	SelectedOption *string `json:"selected_option"`
	TextAnswer     string  `json:"text_answer,omitempty"`
	IsCorrect      bool    `json:"is_correct"`
	PointsAwarded  int     `json:"points_awarded"`
	Graded         bool    `json:"graded"`
	Feedback       string  `json:"feedback,omitempty"`
}

// QuizResultResponse is the grading outcome attached after submission.
type QuizResultResponse struct {
	Answers     []AnswerRecordResponse `json:"answers"`
	Score       int                    `json:"score"`
	Percentage  int                    `json:"percentage"`
	CompletedAt time.Time              `json:"completed_at"`
}

// QuizResponse is the API representation of a quiz.
type QuizResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Difficulty  string              `json:"difficulty"`
	TimeLimit   int                 `json:"time_limit"`
	MaterialIDs []uint              `json:"material_ids,omitempty"`
	Questions   []QuestionResponse  `json:"questions"`
	TotalPoints int                 `json:"total_points"`
	IsSubmitted bool                `json:"is_submitted"`
	Result      *QuizResultResponse `json:"result,omitempty"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// QuizSummaryResponse is the answer-free list representation.
type QuizSummaryResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Difficulty    string     `json:"difficulty"`
	QuestionCount int        `json:"question_count"`
	TotalPoints   int        `json:"total_points"`
	IsSubmitted   bool       `json:"is_submitted"`
	Percentage    *int       `json:"percentage,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewQuizResponse maps a quiz model into its response representation.
// Correct answers and explanations are included only when includeAnswers is
// set, which callers gate on submission state.
func NewQuizResponse(quiz models.Quiz, includeAnswers bool) QuizResponse {
	questions := quiz.QuestionList()
	questionResponses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		item := QuestionResponse{
			ID:     question.ID,
			Type:   question.Type,
			Text:   question.Text,
			Points: question.Points,
		}

		for _, option := range question.Options {
			optionResponse := OptionResponse{ID: option.ID, Text: option.Text}
			if includeAnswers {
				correct := option.IsCorrect
				optionResponse.IsCorrect = &correct
			}
			item.Options = append(item.Options, optionResponse)
		}

		if includeAnswers {
			item.CorrectAnswer = question.CorrectAnswer
			item.Explanation = question.Explanation
		}

		questionResponses = append(questionResponses, item)
	}

	response := QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Difficulty:  quiz.Difficulty,
		TimeLimit:   quiz.TimeLimit,
		MaterialIDs: quiz.MaterialIDList(),
		Questions:   questionResponses,
		TotalPoints: quiz.TotalPoints,
		IsSubmitted: quiz.IsSubmitted,
		SubmittedAt: quiz.SubmittedAt,
		CreatedAt:   quiz.CreatedAt,
	}

	if includeAnswers {
		if result := quiz.ResultDetail(); result != nil {
			response.Result = newQuizResultResponse(*result)
		}
	}

	return response
}

func newQuizResultResponse(result models.QuizResult) *QuizResultResponse {
	answers := make([]AnswerRecordResponse, 0, len(result.Answers))
	for _, answer := range result.Answers {
		answers = append(answers, AnswerRecordResponse{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			TextAnswer:     answer.TextAnswer,
			IsCorrect:      answer.IsCorrect,
			PointsAwarded:  answer.PointsAwarded,
			Graded:         answer.Graded,
			Feedback:       answer.Feedback,
		})
	}

	return &QuizResultResponse{
		Answers:     answers,
		Score:       result.Score,
		Percentage:  result.Percentage,
		CompletedAt: result.CompletedAt,
	}
}

// NewQuizSummaryResponse maps a quiz into its list representation.
func NewQuizSummaryResponse(quiz models.Quiz) QuizSummaryResponse {
	summary := QuizSummaryResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Difficulty:    quiz.Difficulty,
		QuestionCount: len(quiz.QuestionList()),
		TotalPoints:   quiz.TotalPoints,
		IsSubmitted:   quiz.IsSubmitted,
		SubmittedAt:   quiz.SubmittedAt,
		CreatedAt:     quiz.CreatedAt,
	}

	if result := quiz.ResultDetail(); result != nil {
		percentage := result.Percentage
		summary.Percentage = &percentage
	}

	return summary
}

// NewQuizSummaryResponseSlice maps a list of quizzes into summaries.
func NewQuizSummaryResponseSlice(quizzes []models.Quiz) []QuizSummaryResponse {
	responses := make([]QuizSummaryResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizSummaryResponse(quiz))
	}
	return responses
}

// GradePredictionResponse is the AI forecast over submitted quizzes.
type GradePredictionResponse struct {
	PredictedScore  float64  `json:"predicted_score"`
	PredictedGrade  string   `json:"predicted_grade"`
	Confidence      float64  `json:"confidence"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}
