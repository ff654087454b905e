package handler_test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

func seedMaterial(t *testing.T, db *gorm.DB, userID uint) uint {
	t.Helper()

	material := models.StudyMaterial{UserID: userID, Title: "Notes", ExtractedText: "Some extracted text."}
	require.NoError(t, db.Create(&material).Error)
	return material.ID
}

func quizGenerator() *testGenerator {
	return &testGenerator{
		quiz: ai.GeneratedQuiz{
			Title: "Sample Quiz",
			Questions: []ai.GeneratedQuestion{
				{
					Type: models.QuestionTypeMultipleChoice,
					Text: "Pick the right one",
					Options: []ai.GeneratedOption{
						{Text: "Right", IsCorrect: true},
						{Text: "Wrong"},
					},
					Points: 2,
				},
			},
		},
	}
}

func TestQuizEndpointsGenerateAndSubmit(t *testing.T) {
	app, db := setupApp(t, quizGenerator())
	materialID := seedMaterial(t, db, 1)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/quiz/generate", dto.QuizGenerateRequest{MaterialIDs: []uint{materialID}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var generated struct {
		Success bool             `json:"success"`
		Data    dto.QuizResponse `json:"data"`
	}
	decodeResponse(t, resp, &generated)
	require.True(t, generated.Success)
	require.Equal(t, "Sample Quiz", generated.Data.Title)
	require.Len(t, generated.Data.Questions, 1)
	require.Nil(t, generated.Data.Questions[0].Options[0].IsCorrect)

	correctID := generated.Data.Questions[0].Options[0].ID
	resp, err = app.Test(jsonRequest(t, "POST", fmt.Sprintf("/api/quiz/%d/submit", generated.Data.ID), dto.QuizSubmitRequest{Answers: []string{correctID}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var submitted struct {
		Data dto.QuizResponse `json:"data"`
	}
	decodeResponse(t, resp, &submitted)
	require.True(t, submitted.Data.IsSubmitted)
	require.NotNil(t, submitted.Data.Result)
	require.Equal(t, 2, submitted.Data.Result.Score)
	require.Equal(t, 100, submitted.Data.Result.Percentage)

	// A second submission is rejected.
	resp, err = app.Test(jsonRequest(t, "POST", fmt.Sprintf("/api/quiz/%d/submit", generated.Data.ID), dto.QuizSubmitRequest{Answers: []string{correctID}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizEndpointsForeignQuizIsNotFound(t *testing.T) {
	app, db := setupApp(t, quizGenerator())

	quiz := models.Quiz{UserID: 2, Title: "Someone else's", Difficulty: "easy", TimeLimit: 10}
	require.NoError(t, db.Create(&quiz).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/quiz/%d", quiz.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizEndpointsGenerateUnknownMaterial(t *testing.T) {
	app, _ := setupApp(t, quizGenerator())

	resp, err := app.Test(jsonRequest(t, "POST", "/api/quiz/generate", dto.QuizGenerateRequest{MaterialIDs: []uint{404}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestQuizEndpointsPredictGradeRequiresResults(t *testing.T) {
	app, _ := setupApp(t, quizGenerator())

	req := httptest.NewRequest("GET", "/api/quiz/predict-grade", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizEndpointsPredictGrade(t *testing.T) {
	gen := quizGenerator()
	gen.prediction = ai.GradePrediction{PredictedScore: 88, PredictedGrade: "B+", Confidence: 0.8}
	app, db := setupApp(t, gen)

	for i := 0; i < 2; i++ {
		quiz := models.Quiz{UserID: 1, Title: fmt.Sprintf("Quiz %d", i+1), Difficulty: "medium", TimeLimit: 30, IsSubmitted: true}
		now := time.Now().UTC()
		quiz.SubmittedAt = &now
		require.NoError(t, quiz.SetResult(models.QuizResult{Score: 8, Percentage: 80, CompletedAt: now}))
		require.NoError(t, db.Create(&quiz).Error)
	}

	req := httptest.NewRequest("GET", "/api/quiz/predict-grade", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var prediction struct {
		Data dto.GradePredictionResponse `json:"data"`
	}
	decodeResponse(t, resp, &prediction)
	require.Equal(t, "B+", prediction.Data.PredictedGrade)
	require.Equal(t, 88.0, prediction.Data.PredictedScore)
}
