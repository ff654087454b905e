package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

// ErrQuizNotFound covers both absent quizzes and quizzes owned by someone else.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrQuizAlreadySubmitted indicates the one-way submission latch is set.
var ErrQuizAlreadySubmitted = errors.New("quiz already submitted")

// ErrAnswerCountMismatch indicates the submission does not carry exactly one
// answer per question.
var ErrAnswerCountMismatch = errors.New("answers must match question count")

// ErrInvalidQuestion indicates a quiz edit carried a malformed question.
var ErrInvalidQuestion = errors.New("invalid question")

const (
	defaultDifficulty    = "medium"
	defaultQuestionCount = 10
	defaultTimeLimit     = 30
	maxPromptTextLength  = 24000
)

// QuizService owns the quiz lifecycle: generation, answer-hidden serving,
// pre-submission edits and the grading state machine.
type QuizService interface {
	Generate(ctx context.Context, userID uint, payload dto.QuizGenerateRequest) (dto.QuizResponse, error)
	List(ctx context.Context, userID uint) ([]dto.QuizSummaryResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.QuizResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.QuizUpdateRequest) (dto.QuizResponse, error)
	Submit(ctx context.Context, userID, id uint, payload dto.QuizSubmitRequest) (dto.QuizResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type quizService struct {
	quizzes   repository.QuizRepository
	materials repository.MaterialRepository
	generator ai.Generator
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizzes repository.QuizRepository, materials repository.MaterialRepository, generator ai.Generator, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) QuizService {
	return &quizService{
		quizzes:   quizzes,
		materials: materials,
		generator: generator,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "quiz_service").Logger(),
		now:       time.Now,
	}
}

func (s *quizService) Generate(ctx context.Context, userID uint, payload dto.QuizGenerateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	materials, err := s.materials.GetOwnedByIDs(ctx, userID, payload.MaterialIDs)
	if err != nil {
		return dto.QuizResponse{}, err
	}
	if len(materials) == 0 {
		return dto.QuizResponse{}, ErrMaterialNotFound
	}

	difficulty := payload.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}
	questionCount := payload.QuestionCount
	if questionCount <= 0 {
		questionCount = defaultQuestionCount
	}
	timeLimit := payload.TimeLimit
	if timeLimit <= 0 {
		timeLimit = defaultTimeLimit
	}

	generated, err := s.generator.GenerateQuiz(ctx, buildQuizInput(materials, difficulty, questionCount))
	if err != nil {
		return dto.QuizResponse{}, fmt.Errorf("failed to generate quiz: %w", err)
	}

	title := payload.Title
	if title == "" {
		title = generated.Title
	}
	description := payload.Description
	if description == "" {
		description = generated.Description
	}

	materialIDs := make([]uint, 0, len(materials))
	for _, material := range materials {
		materialIDs = append(materialIDs, material.ID)
	}

	quiz := models.Quiz{
		UserID:      userID,
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		TimeLimit:   timeLimit,
	}
	quiz.SetMaterialIDs(materialIDs)
	quiz.SetQuestions(mapGeneratedQuestions(generated.Questions))

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quiz.ID).Uint("user_id", userID).Int("questions", len(generated.Questions)).Msg("quiz generated")

	s.activity.Record(ctx, ActivityEntry{
		UserID:     userID,
		Action:     "generated",
		EntityType: "quiz",
		EntityID:   &quiz.ID,
		Metadata:   map[string]interface{}{"title": quiz.Title, "difficulty": quiz.Difficulty},
	})

	return dto.NewQuizResponse(quiz, false), nil
}

func (s *quizService) List(ctx context.Context, userID uint) ([]dto.QuizSummaryResponse, error) {
	quizzes, err := s.quizzes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizSummaryResponseSlice(quizzes), nil
}

// Get serves the quiz answer-hidden until it has been submitted; afterwards
// the full document including grading detail is returned.
func (s *quizService) Get(ctx context.Context, userID, id uint) (dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, userID, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz, quiz.IsSubmitted), nil
}

func (s *quizService) Update(ctx context.Context, userID, id uint, payload dto.QuizUpdateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.ownedQuiz(ctx, userID, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	if quiz.IsSubmitted {
		return dto.QuizResponse{}, ErrQuizAlreadySubmitted
	}

	// Validate the whole question set before any field is written.
	var questions []models.Question
	if payload.Questions != nil {
		questions, err = mapQuestionPayloads(payload.Questions)
		if err != nil {
			return dto.QuizResponse{}, err
		}
	}

	if payload.Title != nil {
		quiz.Title = *payload.Title
	}
	if payload.Description != nil {
		quiz.Description = *payload.Description
	}
	if payload.TimeLimit != nil {
		quiz.TimeLimit = *payload.TimeLimit
	}
	if questions != nil {
		quiz.SetQuestions(questions)
	}

	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quiz.ID).Msg("quiz updated")

	return dto.NewQuizResponse(quiz, false), nil
}

// Submit runs the grading state machine: objective questions are graded
// locally, short answers in one AI batch, and the result is latched with a
// conditional update so a concurrent submission cannot overwrite it.
func (s *quizService) Submit(ctx context.Context, userID, id uint, payload dto.QuizSubmitRequest) (dto.QuizResponse, error) {
	quiz, err := s.ownedQuiz(ctx, userID, id)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	if quiz.IsSubmitted {
		return dto.QuizResponse{}, ErrQuizAlreadySubmitted
	}

	questions := quiz.QuestionList()
	if len(payload.Answers) != len(questions) {
		return dto.QuizResponse{}, ErrAnswerCountMismatch
	}

	records := make([]models.AnswerRecord, len(questions))
	var pending []ai.ShortAnswerItem

	for i, question := range questions {
		answer := payload.Answers[i]

		switch question.Type {
		case models.QuestionTypeShortAnswer:
			// Deferred: graded in one batch after the synchronous pass.
			records[i] = models.AnswerRecord{
				QuestionID: question.ID,
				TextAnswer: answer,
			}
			pending = append(pending, ai.ShortAnswerItem{
				QuestionID:      question.ID,
				Question:        question.Text,
				ReferenceAnswer: question.CorrectAnswer,
				StudentAnswer:   answer,
				MaxPoints:       question.Points,
			})
		default:
			records[i] = gradeObjective(question, answer)
		}
	}

	if len(pending) > 0 {
		s.gradeShortAnswers(ctx, records, pending)
	}

	totalPoints := 0
	for _, question := range questions {
		totalPoints += question.Points
	}

	score := 0
	for _, record := range records {
		score += record.PointsAwarded
	}

	submittedAt := s.now().UTC()
	result := models.QuizResult{
		Answers:     records,
		Score:       score,
		Percentage:  models.ScorePercentage(score, totalPoints),
		CompletedAt: submittedAt,
	}

	if err := quiz.SetResult(result); err != nil {
		return dto.QuizResponse{}, err
	}

	if err := s.quizzes.SubmitResult(ctx, quiz.ID, totalPoints, quiz.Result, submittedAt); err != nil {
		if errors.Is(err, repository.ErrAlreadySubmitted) {
			return dto.QuizResponse{}, ErrQuizAlreadySubmitted
		}
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Uint("quiz_id", quiz.ID).Int("score", score).Int("percentage", result.Percentage).Msg("quiz submitted")

	s.activity.Record(ctx, ActivityEntry{
		UserID:     userID,
		Action:     "submitted",
		EntityType: "quiz",
		EntityID:   &quiz.ID,
		Metadata:   map[string]interface{}{"score": score, "percentage": result.Percentage},
	})

	graded, err := s.quizzes.GetByID(ctx, quiz.ID)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(graded, true), nil
}

func (s *quizService) Delete(ctx context.Context, userID, id uint) error {
	quiz, err := s.ownedQuiz(ctx, userID, id)
	if err != nil {
		return err
	}

	return s.quizzes.Delete(ctx, quiz.ID)
}

func (s *quizService) ownedQuiz(ctx context.Context, userID, id uint) (models.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, ErrQuizNotFound
		}
		return models.Quiz{}, err
	}

	if quiz.UserID != userID {
		return models.Quiz{}, ErrQuizNotFound
	}

	return quiz, nil
}

// gradeObjective awards the question's points iff the chosen option is
// flagged correct. An answer matching no option records a nil selection and
// zero points rather than an error.
func gradeObjective(question models.Question, answer string) models.AnswerRecord {
	record := models.AnswerRecord{
		QuestionID: question.ID,
		Graded:     true,
	}

	for _, option := range question.Options {
		if option.ID == answer {
			selected := option.ID
			record.SelectedOption = &selected
			record.IsCorrect = option.IsCorrect
			if option.IsCorrect {
				record.PointsAwarded = question.Points
			}
			break
		}
	}

	return record
}

// gradeShortAnswers applies the AI batch verdicts in place. A failed or
// unparsable batch leaves the affected answers ungraded at zero points
// instead of aborting the submission.
func (s *quizService) gradeShortAnswers(ctx context.Context, records []models.AnswerRecord, pending []ai.ShortAnswerItem) {
	grades, err := s.generator.GradeShortAnswers(ctx, pending)
	if err != nil {
		s.logger.Warn().Err(err).Msg("short answer grading failed; answers left ungraded")
		return
	}

	maxByQuestion := make(map[string]int, len(pending))
	for _, item := range pending {
		maxByQuestion[item.QuestionID] = item.MaxPoints
	}

	gradeByQuestion := make(map[string]ai.ShortAnswerGrade, len(grades))
	for _, grade := range grades {
		gradeByQuestion[grade.QuestionID] = grade
	}

	for i, record := range records {
		grade, ok := gradeByQuestion[record.QuestionID]
		if !ok {
			continue
		}

		points := grade.PointsAwarded
		if max, found := maxByQuestion[record.QuestionID]; found && points > max {
			points = max
		}
		if points < 0 {
			points = 0
		}

		records[i].IsCorrect = grade.IsCorrect
		records[i].PointsAwarded = points
		records[i].Graded = true
		records[i].Feedback = grade.Feedback
	}
}

func buildQuizInput(materials []models.StudyMaterial, difficulty string, questionCount int) ai.QuizInput {
	input := ai.QuizInput{
		Difficulty:    difficulty,
		QuestionCount: questionCount,
	}

	textBudget := maxPromptTextLength
	for _, material := range materials {
		input.Materials = append(input.Materials, ai.MaterialBrief{
			ID:      material.ID,
			Title:   material.Title,
			Summary: material.Summary,
		})

		if textBudget <= 0 || material.ExtractedText == "" {
			continue
		}

		text := material.ExtractedText
		if len(text) > textBudget {
			text = text[:textBudget]
		}
		input.MaterialText += text + "\n\n"
		textBudget -= len(text)
	}

	return input
}

func mapGeneratedQuestions(generated []ai.GeneratedQuestion) []models.Question {
	questions := make([]models.Question, 0, len(generated))
	for _, item := range generated {
		points := item.Points
		if points <= 0 {
			points = 1
		}

		question := models.Question{
			ID:          uuid.NewString(),
			Type:        item.Type,
			Text:        item.Text,
			Explanation: item.Explanation,
			Points:      points,
		}

		if item.Type == models.QuestionTypeShortAnswer {
			question.CorrectAnswer = item.CorrectAnswer
		} else {
			for _, option := range item.Options {
				question.Options = append(question.Options, models.Option{
					ID:        uuid.NewString(),
					Text:      option.Text,
					IsCorrect: option.IsCorrect,
				})
			}
		}

		questions = append(questions, question)
	}

	return questions
}

func mapQuestionPayloads(payloads []dto.QuestionPayload) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(payloads))
	for i, payload := range payloads {
		switch payload.Type {
		case models.QuestionTypeMultipleChoice, models.QuestionTypeTrueFalse:
			if len(payload.Options) == 0 {
				return nil, fmt.Errorf("%w: question %d requires options", ErrInvalidQuestion, i+1)
			}
		case models.QuestionTypeShortAnswer:
			if payload.CorrectAnswer == "" {
				return nil, fmt.Errorf("%w: question %d requires a correct answer", ErrInvalidQuestion, i+1)
			}
		default:
			return nil, fmt.Errorf("%w: question %d has unknown type %q", ErrInvalidQuestion, i+1, payload.Type)
		}

		points := payload.Points
		if points <= 0 {
			points = 1
		}

		question := models.Question{
			ID:            payload.ID,
			Type:          payload.Type,
			Text:          payload.Text,
			CorrectAnswer: payload.CorrectAnswer,
			Explanation:   payload.Explanation,
			Points:        points,
		}
		if question.ID == "" {
			question.ID = uuid.NewString()
		}

		if payload.Type != models.QuestionTypeShortAnswer {
			for _, option := range payload.Options {
				optionID := option.ID
				if optionID == "" {
					optionID = uuid.NewString()
				}
				question.Options = append(question.Options, models.Option{
					ID:        optionID,
					Text:      option.Text,
					IsCorrect: option.IsCorrect,
				})
			}
		}

		questions = append(questions, question)
	}

	return questions, nil
}
