package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.StudyMaterial{}, &models.StudyPlan{}, &models.Quiz{}, &models.Activity{}))
	return db
}

// stubGenerator satisfies ai.Generator with per-call hooks. Unset hooks
// return empty results.
type stubGenerator struct {
	quizFn       func(ctx context.Context, input ai.QuizInput) (ai.GeneratedQuiz, error)
	gradeFn      func(ctx context.Context, items []ai.ShortAnswerItem) ([]ai.ShortAnswerGrade, error)
	planFn       func(ctx context.Context, input ai.StudyPlanInput) (ai.GeneratedStudyPlan, error)
	assessmentFn func(ctx context.Context) ([]ai.AssessmentQuestion, error)
	styleFn      func(ctx context.Context, responses []ai.AssessmentResponse) (ai.LearningStyleAnalysis, error)
	predictFn    func(ctx context.Context, outcomes []ai.QuizOutcome) (ai.GradePrediction, error)
	summarizeFn  func(ctx context.Context, title, text string) (ai.MaterialSummary, error)
}

func (s *stubGenerator) GenerateQuiz(ctx context.Context, input ai.QuizInput) (ai.GeneratedQuiz, error) {
	if s.quizFn != nil {
		return s.quizFn(ctx, input)
	}
	return ai.GeneratedQuiz{}, nil
}

func (s *stubGenerator) GradeShortAnswers(ctx context.Context, items []ai.ShortAnswerItem) ([]ai.ShortAnswerGrade, error) {
	if s.gradeFn != nil {
		return s.gradeFn(ctx, items)
	}
	return nil, nil
}

func (s *stubGenerator) GenerateStudyPlan(ctx context.Context, input ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
	if s.planFn != nil {
		return s.planFn(ctx, input)
	}
	return ai.GeneratedStudyPlan{}, nil
}

func (s *stubGenerator) GenerateAssessment(ctx context.Context) ([]ai.AssessmentQuestion, error) {
	if s.assessmentFn != nil {
		return s.assessmentFn(ctx)
	}
	return nil, nil
}

func (s *stubGenerator) AnalyzeLearningStyle(ctx context.Context, responses []ai.AssessmentResponse) (ai.LearningStyleAnalysis, error) {
	if s.styleFn != nil {
		return s.styleFn(ctx, responses)
	}
	return ai.LearningStyleAnalysis{}, nil
}

func (s *stubGenerator) PredictGrade(ctx context.Context, outcomes []ai.QuizOutcome) (ai.GradePrediction, error) {
	if s.predictFn != nil {
		return s.predictFn(ctx, outcomes)
	}
	return ai.GradePrediction{}, nil
}

func (s *stubGenerator) SummarizeMaterial(ctx context.Context, title, text string) (ai.MaterialSummary, error) {
	if s.summarizeFn != nil {
		return s.summarizeFn(ctx, title, text)
	}
	return ai.MaterialSummary{}, nil
}

// stubFileStore records uploads and deletions in memory.
type stubFileStore struct {
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *stubFileStore) Upload(_ context.Context, name string, reader io.Reader) (string, string, error) {
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", "", err
	}
	s.uploads++
	return "https://cdn.example.com/" + name, "edugenius/" + name, nil
}

func (s *stubFileStore) Delete(_ context.Context, publicID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, publicID)
	return nil
}

// stubActivity records activity entries handed to the recorder.
type stubActivity struct {
	entries []ActivityEntry
}

func (s *stubActivity) Record(_ context.Context, entry ActivityEntry) {
	s.entries = append(s.entries, entry)
}

func newTestFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(int64(len(content))+1024))
	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
