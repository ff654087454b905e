package ai

import (
	"fmt"
	"strings"
)

func quizSystemPrompt() string {
	return "You are an assessment author for a study platform. Respond with a single JSON object, no prose. " +
		"Schema: {\"title\": string, \"description\": string, \"questions\": [{\"type\": \"multiple-choice\"|\"true-false\"|\"short-answer\", " +
		"\"text\": string, \"points\": integer, \"options\": [{\"text\": string, \"is_correct\": boolean}], " +
		"\"correct_answer\": string, \"explanation\": string}]}. " +
		"Multiple-choice questions need exactly 4 options with exactly one marked correct, true-false exactly 2. " +
		"Short-answer questions omit options and carry a reference correct_answer instead. " +
		"Distractors must be plausible misconceptions, not joke answers."
}

func buildQuizPrompt(input QuizInput) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Write a %s difficulty quiz with %d questions covering the study materials below.\n", input.Difficulty, input.QuestionCount)
	builder.WriteString("Mix question types, favouring multiple-choice. Award at least 1 point per question.\n")
	for _, material := range input.Materials {
		fmt.Fprintf(&builder, "\n## %s\n%s\n", material.Title, material.Summary)
	}
	if input.MaterialText != "" {
		builder.WriteString("\n## Source text\n")
		builder.WriteString(input.MaterialText)
	}
	builder.WriteString("\nReturn JSON only.")
	return builder.String()
}

func gradingSystemPrompt() string {
	return "You grade short-answer quiz responses against a reference answer. Respond with a single JSON object: " +
		"{\"grades\": [{\"question_id\": string, \"is_correct\": boolean, \"points_awarded\": integer, \"feedback\": string}]}. " +
		"Award partial credit for partially correct answers but never more than the stated maximum points. " +
		"Judge meaning, not wording."
}

func buildGradingPrompt(items []ShortAnswerItem) string {
	builder := strings.Builder{}
	builder.WriteString("Grade each answer below.\n")
	for _, item := range items {
		fmt.Fprintf(&builder, "\n## Question %s (max %d points)\n%s\n", item.QuestionID, item.MaxPoints, item.Question)
		fmt.Fprintf(&builder, "Reference answer: %s\n", item.ReferenceAnswer)
		fmt.Fprintf(&builder, "Student answer: %s\n", item.StudentAnswer)
	}
	builder.WriteString("\nReturn JSON only.")
	return builder.String()
}

func planSystemPrompt() string {
	return "You build study schedules. Respond with a single JSON object: " +
		"{\"title\": string, \"sessions\": [{\"day\": integer, \"title\": string, \"duration_minutes\": integer, " +
		"\"material_ids\": [integer], \"activities\": [string]}]}. " +
		"Days are 1-based and strictly increasing. Only reference the material ids you are given."
}

func buildPlanPrompt(input StudyPlanInput) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Build a study plan for the subject %q with the exam on %s.\n", input.Subject, input.ExamDate.Format("2006-01-02"))
	if input.DailyMinutes > 0 {
		fmt.Fprintf(&builder, "Target roughly %d minutes of study per day.\n", input.DailyMinutes)
	}
	builder.WriteString("Available materials:\n")
	for _, material := range input.Materials {
		fmt.Fprintf(&builder, "- id %d: %s: %s\n", material.ID, material.Title, material.Summary)
	}
	builder.WriteString("\nReturn JSON only.")
	return builder.String()
}

func assessmentSystemPrompt() string {
	return "You author VARK learning-style assessments. Respond with a single JSON object: " +
		"{\"questions\": [{\"text\": string, \"options\": [string]}]}. " +
		"Each question offers four options, one aligned with each VARK category in order: " +
		"visual, auditory, reading/writing, kinesthetic."
}

func buildAssessmentPrompt() string {
	return "Write 8 scenario questions that reveal how a student prefers to learn. Return JSON only."
}

func styleSystemPrompt() string {
	return "You analyse learning-style assessment responses. Respond with a single JSON object: " +
		"{\"visual\": integer, \"auditory\": integer, \"reading\": integer, \"kinesthetic\": integer, \"summary\": string}. " +
		"Each counter is the number of responses aligned with that VARK category."
}

func buildStylePrompt(responses []AssessmentResponse) string {
	builder := strings.Builder{}
	builder.WriteString("Classify each response into a VARK category and count them.\n")
	for _, response := range responses {
		fmt.Fprintf(&builder, "\nQ: %s\nA: %s\n", response.Question, response.Answer)
	}
	builder.WriteString("\nReturn JSON only.")
	return builder.String()
}

func predictionSystemPrompt() string {
	return "You forecast exam performance from past quiz results. Respond with a single JSON object: " +
		"{\"predicted_score\": number 0-100, \"predicted_grade\": string, \"confidence\": number 0-1, " +
		"\"strengths\": [string], \"weaknesses\": [string], \"recommendations\": [string]}."
}

func buildPredictionPrompt(outcomes []QuizOutcome) string {
	builder := strings.Builder{}
	builder.WriteString("Past quiz results, oldest first:\n")
	for _, outcome := range outcomes {
		fmt.Fprintf(&builder, "- %s: %d/%d points (%d%%) on %s\n",
			outcome.Title, outcome.Score, outcome.TotalPoints, outcome.Percentage, outcome.CompletedAt.Format("2006-01-02"))
	}
	builder.WriteString("\nReturn JSON only.")
	return builder.String()
}

func summarySystemPrompt() string {
	return "You summarize study documents for a revision platform. Respond with a single JSON object: " +
		"{\"summary\": string, \"key_points\": [string], \"tags\": [string], \"subject\": string, " +
		"\"difficulty\": \"easy\"|\"medium\"|\"hard\"}."
}

func buildSummaryPrompt(title, text string) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "Summarize the document %q for exam revision.\n\n", title)
	builder.WriteString(text)
	builder.WriteString("\n\nReturn JSON only.")
	return builder.String()
}
