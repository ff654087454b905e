package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

func seedSubmittedQuiz(t *testing.T, quizzes repository.QuizRepository, userID uint, title string, score, total int, submittedAt time.Time) {
	t.Helper()

	quiz := models.Quiz{UserID: userID, Title: title, Difficulty: "medium", TimeLimit: 30}
	quiz.SetQuestions([]models.Question{{ID: "q1", Type: models.QuestionTypeMultipleChoice, Points: total}})
	require.NoError(t, quizzes.Create(context.Background(), &quiz))

	require.NoError(t, quiz.SetResult(models.QuizResult{
		Score:       score,
		Percentage:  models.ScorePercentage(score, total),
		CompletedAt: submittedAt,
	}))
	require.NoError(t, quizzes.SubmitResult(context.Background(), quiz.ID, total, quiz.Result, submittedAt))
}

func TestPredictionServiceRequiresTwoResults(t *testing.T) {
	db := openTestDB(t)
	quizzes := repository.NewQuizRepository(db)
	svc := NewPredictionService(quizzes, &stubGenerator{}, testLogger())

	_, err := svc.PredictGrade(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotEnoughResults)

	seedSubmittedQuiz(t, quizzes, 1, "First", 8, 10, time.Now().UTC())
	_, err = svc.PredictGrade(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotEnoughResults)
}

func TestPredictionServiceForwardsOutcomesInOrder(t *testing.T) {
	db := openTestDB(t)
	quizzes := repository.NewQuizRepository(db)

	earlier := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	later := earlier.AddDate(0, 0, 7)
	seedSubmittedQuiz(t, quizzes, 1, "Recent", 9, 10, later)
	seedSubmittedQuiz(t, quizzes, 1, "Older", 6, 10, earlier)
	// Other users' results stay out of the forecast.
	seedSubmittedQuiz(t, quizzes, 2, "Foreign", 10, 10, later)

	gen := &stubGenerator{predictFn: func(_ context.Context, outcomes []ai.QuizOutcome) (ai.GradePrediction, error) {
		require.Len(t, outcomes, 2)
		require.Equal(t, "Older", outcomes[0].Title)
		require.Equal(t, "Recent", outcomes[1].Title)
		require.Equal(t, 60, outcomes[0].Percentage)
		return ai.GradePrediction{PredictedScore: 82.5, PredictedGrade: "B", Confidence: 0.7}, nil
	}}

	svc := NewPredictionService(quizzes, gen, testLogger())
	prediction, err := svc.PredictGrade(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 82.5, prediction.PredictedScore)
	require.Equal(t, "B", prediction.PredictedGrade)
}
