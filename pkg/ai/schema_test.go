package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeValidatedQuiz(t *testing.T) {
	content := `{
		"title": "Photosynthesis Basics",
		"questions": [
			{
				"type": "multiple-choice",
				"text": "What do plants absorb?",
				"points": 2,
				"options": [
					{"text": "Light", "is_correct": true},
					{"text": "Sound", "is_correct": false}
				]
			},
			{
				"type": "short-answer",
				"text": "Describe the role of chlorophyll.",
				"points": 5,
				"correct_answer": "It absorbs light energy."
			}
		]
	}`

	var quiz GeneratedQuiz
	require.NoError(t, decodeValidated(quizSchema, content, &quiz))
	require.Equal(t, "Photosynthesis Basics", quiz.Title)
	require.Len(t, quiz.Questions, 2)
	require.Equal(t, 2, quiz.Questions[0].Points)
	require.True(t, quiz.Questions[0].Options[0].IsCorrect)
	require.Equal(t, "It absorbs light energy.", quiz.Questions[1].CorrectAnswer)
}

func TestDecodeValidatedRejectsMalformedJSON(t *testing.T) {
	var quiz GeneratedQuiz
	err := decodeValidated(quizSchema, `{"title": "broken"`, &quiz)
	require.ErrorIs(t, err, ErrInvalidModelResponse)
}

func TestDecodeValidatedRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing questions": `{"title": "Empty"}`,
		"empty questions":   `{"title": "Empty", "questions": []}`,
		"unknown type":      `{"title": "Bad", "questions": [{"type": "essay", "text": "Explain.", "points": 1}]}`,
		"negative points":   `{"title": "Bad", "questions": [{"type": "true-false", "text": "Sky is blue.", "points": -1}]}`,
	}

	for name, content := range cases {
		var quiz GeneratedQuiz
		err := decodeValidated(quizSchema, content, &quiz)
		require.ErrorIs(t, err, ErrInvalidModelResponse, name)
	}
}

func TestDecodeValidatedStyleCounters(t *testing.T) {
	content := `{"visual": 3, "auditory": 0, "reading": 1, "kinesthetic": 2, "summary": "Mostly visual."}`

	var analysis LearningStyleAnalysis
	require.NoError(t, decodeValidated(styleSchema, content, &analysis))
	require.Equal(t, 3, analysis.Visual)
	require.Equal(t, "Mostly visual.", analysis.Summary)

	err := decodeValidated(styleSchema, `{"visual": 1, "auditory": 1, "reading": 1}`, &analysis)
	require.ErrorIs(t, err, ErrInvalidModelResponse)
}

func TestDecodeValidatedPredictionBounds(t *testing.T) {
	var prediction GradePrediction
	err := decodeValidated(predictionSchema, `{"predicted_score": 120, "predicted_grade": "A", "confidence": 0.9}`, &prediction)
	require.ErrorIs(t, err, ErrInvalidModelResponse)

	require.NoError(t, decodeValidated(predictionSchema, `{"predicted_score": 82.5, "predicted_grade": "B", "confidence": 0.7}`, &prediction))
	require.InDelta(t, 82.5, prediction.PredictedScore, 0.001)
	require.Equal(t, "B", prediction.PredictedGrade)
}
