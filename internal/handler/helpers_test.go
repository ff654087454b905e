package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/config"
	"github.com/edugenius/edugenius-api/internal/handler"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/internal/router"
	"github.com/edugenius/edugenius-api/internal/service"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

// testGenerator answers every AI call with deterministic content.
type testGenerator struct {
	quiz       ai.GeneratedQuiz
	plan       ai.GeneratedStudyPlan
	grades     []ai.ShortAnswerGrade
	prediction ai.GradePrediction
}

func (g *testGenerator) GenerateQuiz(context.Context, ai.QuizInput) (ai.GeneratedQuiz, error) {
	return g.quiz, nil
}

func (g *testGenerator) GradeShortAnswers(context.Context, []ai.ShortAnswerItem) ([]ai.ShortAnswerGrade, error) {
	return g.grades, nil
}

func (g *testGenerator) GenerateStudyPlan(context.Context, ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
	return g.plan, nil
}

func (g *testGenerator) GenerateAssessment(context.Context) ([]ai.AssessmentQuestion, error) {
	return []ai.AssessmentQuestion{{Text: "How do you study?", Options: []string{"Watch", "Listen", "Read", "Do"}}}, nil
}

func (g *testGenerator) AnalyzeLearningStyle(context.Context, []ai.AssessmentResponse) (ai.LearningStyleAnalysis, error) {
	return ai.LearningStyleAnalysis{Visual: 2, Summary: "Visual learner."}, nil
}

func (g *testGenerator) PredictGrade(context.Context, []ai.QuizOutcome) (ai.GradePrediction, error) {
	return g.prediction, nil
}

func (g *testGenerator) SummarizeMaterial(context.Context, string, string) (ai.MaterialSummary, error) {
	return ai.MaterialSummary{Summary: "A summary.", Subject: "general", Difficulty: "medium"}, nil
}

type testFileStore struct{}

func (s *testFileStore) Upload(_ context.Context, name string, reader io.Reader) (string, string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", "", err
	}
	return "https://files.test/" + name, "edugenius/" + name, nil
}

func (s *testFileStore) Delete(context.Context, string) error {
	return nil
}

// setupApp wires the full route tree against an in-memory database. The JWT
// middleware is replaced by one that pins user id 1.
func setupApp(t *testing.T, gen ai.Generator) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.StudyMaterial{}, &models.StudyPlan{}, &models.Quiz{}, &models.Activity{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	planRepo := repository.NewStudyPlanRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activityService := service.NewActivityService(activityRepo, nil, "edugenius", logger)
	authService := service.NewAuthService(userRepo, validate, "secret", time.Hour, logger)
	userService := service.NewUserService(userRepo, gen, validate, logger)
	materialService := service.NewMaterialService(materialRepo, gen, &testFileStore{}, validate, activityService, logger)
	planService := service.NewStudyPlanService(planRepo, materialRepo, gen, validate, activityService, logger)
	quizService := service.NewQuizService(quizRepo, materialRepo, gen, validate, activityService, logger)
	predictionService := service.NewPredictionService(quizRepo, gen, logger)
	dashboardService := service.NewDashboardService(userRepo, materialRepo, quizRepo, planRepo, nil, time.Minute, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(authService, userService, logger),
		UserHandler:      handler.NewUserHandler(userService, dashboardService, activityService, logger),
		MaterialHandler:  handler.NewMaterialHandler(materialService, logger),
		StudyPlanHandler: handler.NewStudyPlanHandler(planService, logger),
		QuizHandler:      handler.NewQuizHandler(quizService, predictionService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(1))
			return c.Next()
		},
	})

	return app, db
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	if payload != nil {
		require.NoError(t, json.NewEncoder(body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
