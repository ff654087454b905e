package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openQuizDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:models_quiz_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Quiz{}))
	return db
}

func TestQuizSaveRecomputesTotalPoints(t *testing.T) {
	db := openQuizDB(t)

	quiz := Quiz{UserID: 1, Title: "Algebra", Difficulty: "medium", TimeLimit: 30}
	quiz.SetQuestions([]Question{
		{ID: "q1", Type: QuestionTypeMultipleChoice, Text: "2+2?", Points: 2},
		{ID: "q2", Type: QuestionTypeShortAnswer, Text: "Define x", CorrectAnswer: "unknown", Points: 3},
	})

	require.NoError(t, db.Create(&quiz).Error)
	require.Equal(t, 5, quiz.TotalPoints)

	quiz.SetQuestions([]Question{
		{ID: "q1", Type: QuestionTypeMultipleChoice, Text: "2+2?", Points: 1},
	})
	require.NoError(t, db.Save(&quiz).Error)
	require.Equal(t, 1, quiz.TotalPoints)
}

func TestQuizResultRoundTrip(t *testing.T) {
	quiz := Quiz{}
	require.Nil(t, quiz.ResultDetail())

	completed := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, quiz.SetResult(QuizResult{
		Answers:     []AnswerRecord{{QuestionID: "q1", IsCorrect: true, PointsAwarded: 2, Graded: true}},
		Score:       2,
		Percentage:  100,
		CompletedAt: completed,
	}))

	result := quiz.ResultDetail()
	require.NotNil(t, result)
	require.Equal(t, 2, result.Score)
	require.Equal(t, 100, result.Percentage)
	require.True(t, result.CompletedAt.Equal(completed))
	require.Len(t, result.Answers, 1)
}

func TestScorePercentage(t *testing.T) {
	require.Equal(t, 50, ScorePercentage(1, 2))
	require.Equal(t, 67, ScorePercentage(2, 3))
	require.Equal(t, 0, ScorePercentage(0, 10))
}

func TestScorePercentageZeroTotal(t *testing.T) {
	require.Equal(t, 0, ScorePercentage(0, 0))
	require.Equal(t, 0, ScorePercentage(5, 0))
	require.Equal(t, 0, ScorePercentage(5, -1))
}
