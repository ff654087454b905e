package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "edugenius",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of generative AI requests",
	}, []string{"model", "operation"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "edugenius",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed generative AI requests",
	}, []string{"model", "operation"})
)

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float32
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a new generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	client := openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey))

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/edugenius/edugenius-api/pkg/ai/openai"),
		logger: logger.With().Str("component", "openai").Logger(),
	}, nil
}

// complete performs one JSON-mode chat completion and returns the trimmed content.
func (g *OpenAIGenerator) complete(parent context.Context, operation, system, user string) (string, error) {
	ctx, span := g.tracer.Start(parent, "openai."+operation, trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	if g.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()
	}

	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(g.cfg.Model, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(g.cfg.Model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(g.cfg.Model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateQuiz asks the model to author a quiz over the supplied materials.
func (g *OpenAIGenerator) GenerateQuiz(ctx context.Context, input QuizInput) (GeneratedQuiz, error) {
	content, err := g.complete(ctx, "generate_quiz", quizSystemPrompt(), buildQuizPrompt(input))
	if err != nil {
		return GeneratedQuiz{}, err
	}

	var quiz GeneratedQuiz
	if err := decodeValidated(quizSchema, content, &quiz); err != nil {
		g.logger.Error().Err(err).Msg("quiz generation returned invalid payload")
		return GeneratedQuiz{}, err
	}

	return quiz, nil
}

// GradeShortAnswers grades a batch of free-text answers in one request.
// Awarded points are clamped to each question's maximum.
func (g *OpenAIGenerator) GradeShortAnswers(ctx context.Context, items []ShortAnswerItem) ([]ShortAnswerGrade, error) {
	if len(items) == 0 {
		return nil, nil
	}

	content, err := g.complete(ctx, "grade_answers", gradingSystemPrompt(), buildGradingPrompt(items))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Grades []ShortAnswerGrade `json:"grades"`
	}
	if err := decodeValidated(gradesSchema, content, &payload); err != nil {
		g.logger.Error().Err(err).Msg("short answer grading returned invalid payload")
		return nil, err
	}

	maxByQuestion := make(map[string]int, len(items))
	for _, item := range items {
		maxByQuestion[item.QuestionID] = item.MaxPoints
	}

	for i, grade := range payload.Grades {
		if max, ok := maxByQuestion[grade.QuestionID]; ok && grade.PointsAwarded > max {
			payload.Grades[i].PointsAwarded = max
		}
	}

	return payload.Grades, nil
}

// GenerateStudyPlan asks the model for an ordered session schedule.
func (g *OpenAIGenerator) GenerateStudyPlan(ctx context.Context, input StudyPlanInput) (GeneratedStudyPlan, error) {
	content, err := g.complete(ctx, "generate_plan", planSystemPrompt(), buildPlanPrompt(input))
	if err != nil {
		return GeneratedStudyPlan{}, err
	}

	var plan GeneratedStudyPlan
	if err := decodeValidated(planSchema, content, &plan); err != nil {
		g.logger.Error().Err(err).Msg("study plan generation returned invalid payload")
		return GeneratedStudyPlan{}, err
	}

	return plan, nil
}

// GenerateAssessment asks the model for a VARK assessment questionnaire.
func (g *OpenAIGenerator) GenerateAssessment(ctx context.Context) ([]AssessmentQuestion, error) {
	content, err := g.complete(ctx, "generate_assessment", assessmentSystemPrompt(), buildAssessmentPrompt())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []AssessmentQuestion `json:"questions"`
	}
	if err := decodeValidated(assessmentSchema, content, &payload); err != nil {
		g.logger.Error().Err(err).Msg("assessment generation returned invalid payload")
		return nil, err
	}

	return payload.Questions, nil
}

// AnalyzeLearningStyle classifies assessment responses into VARK counters.
func (g *OpenAIGenerator) AnalyzeLearningStyle(ctx context.Context, responses []AssessmentResponse) (LearningStyleAnalysis, error) {
	content, err := g.complete(ctx, "analyze_style", styleSystemPrompt(), buildStylePrompt(responses))
	if err != nil {
		return LearningStyleAnalysis{}, err
	}

	var analysis LearningStyleAnalysis
	if err := decodeValidated(styleSchema, content, &analysis); err != nil {
		g.logger.Error().Err(err).Msg("learning style analysis returned invalid payload")
		return LearningStyleAnalysis{}, err
	}

	return analysis, nil
}

// PredictGrade forecasts exam performance over past quiz outcomes.
func (g *OpenAIGenerator) PredictGrade(ctx context.Context, outcomes []QuizOutcome) (GradePrediction, error) {
	content, err := g.complete(ctx, "predict_grade", predictionSystemPrompt(), buildPredictionPrompt(outcomes))
	if err != nil {
		return GradePrediction{}, err
	}

	var prediction GradePrediction
	if err := decodeValidated(predictionSchema, content, &prediction); err != nil {
		g.logger.Error().Err(err).Msg("grade prediction returned invalid payload")
		return GradePrediction{}, err
	}

	return prediction, nil
}

// SummarizeMaterial derives summary metadata from extracted document text.
func (g *OpenAIGenerator) SummarizeMaterial(ctx context.Context, title, text string) (MaterialSummary, error) {
	content, err := g.complete(ctx, "summarize_material", summarySystemPrompt(), buildSummaryPrompt(title, text))
	if err != nil {
		return MaterialSummary{}, err
	}

	var summary MaterialSummary
	if err := decodeValidated(summarySchema, content, &summary); err != nil {
		g.logger.Error().Err(err).Msg("material summarization returned invalid payload")
		return MaterialSummary{}, err
	}

	return summary, nil
}
