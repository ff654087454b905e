package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

func setupStudyPlanService(t *testing.T, gen ai.Generator) (StudyPlanService, uint) {
	t.Helper()

	db := openTestDB(t)
	plans := repository.NewStudyPlanRepository(db)
	materials := repository.NewMaterialRepository(db)

	material := models.StudyMaterial{UserID: 1, Title: "Cell Biology", Summary: "Cells and organelles."}
	require.NoError(t, materials.Create(context.Background(), &material))

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewStudyPlanService(plans, materials, gen, validate, &stubActivity{}, testLogger())
	return svc, material.ID
}

func generatedPlan() ai.GeneratedStudyPlan {
	return ai.GeneratedStudyPlan{
		Title: "Biology Exam Prep",
		Sessions: []ai.GeneratedSession{
			{Day: 1, Title: "Cell structure", DurationMinutes: 60, Activities: []string{"read", "summarize"}},
			{Day: 2, Title: "Organelles", DurationMinutes: 45},
			{Day: 3, Title: "Review", DurationMinutes: 30},
			{Day: 4, Title: "Practice quiz", DurationMinutes: 30},
		},
	}
}

func TestStudyPlanServiceCreate(t *testing.T) {
	gen := &stubGenerator{planFn: func(_ context.Context, input ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
		require.Equal(t, "biology", input.Subject)
		require.Len(t, input.Materials, 1)
		return generatedPlan(), nil
	}}
	svc, materialID := setupStudyPlanService(t, gen)

	plan, err := svc.Create(context.Background(), 1, dto.StudyPlanCreateRequest{
		Subject:     "biology",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	})
	require.NoError(t, err)
	require.Equal(t, "Biology Exam Prep", plan.Title)
	require.Len(t, plan.Sessions, 4)
	require.Equal(t, 0, plan.Progress)

	// Session dates follow the 1-based day offsets from today.
	require.NotEmpty(t, plan.Sessions[0].ID)
	require.True(t, plan.Sessions[1].Date.After(plan.Sessions[0].Date))
}

func TestStudyPlanServiceCreateUnknownMaterial(t *testing.T) {
	svc, _ := setupStudyPlanService(t, &stubGenerator{})

	_, err := svc.Create(context.Background(), 1, dto.StudyPlanCreateRequest{
		Subject:     "biology",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{42},
	})
	require.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestStudyPlanServiceSessionCompletionDrivesProgress(t *testing.T) {
	gen := &stubGenerator{planFn: func(context.Context, ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
		return generatedPlan(), nil
	}}
	svc, materialID := setupStudyPlanService(t, gen)

	plan, err := svc.Create(context.Background(), 1, dto.StudyPlanCreateRequest{
		Subject:     "biology",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	})
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateSession(context.Background(), 1, plan.ID, plan.Sessions[0].ID, dto.SessionUpdateRequest{Completed: &completed})
	require.NoError(t, err)
	require.Equal(t, 25, updated.Progress)
	require.True(t, updated.Sessions[0].Completed)

	// Un-completing brings the derived progress back down.
	notDone := false
	reverted, err := svc.UpdateSession(context.Background(), 1, plan.ID, plan.Sessions[0].ID, dto.SessionUpdateRequest{Completed: &notDone})
	require.NoError(t, err)
	require.Equal(t, 0, reverted.Progress)
}

func TestStudyPlanServiceSessionNotesSanitized(t *testing.T) {
	gen := &stubGenerator{planFn: func(context.Context, ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
		return generatedPlan(), nil
	}}
	svc, materialID := setupStudyPlanService(t, gen)

	plan, err := svc.Create(context.Background(), 1, dto.StudyPlanCreateRequest{
		Subject:     "biology",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	})
	require.NoError(t, err)

	notes := "<script>alert(1)</script> reviewed mitochondria"
	updated, err := svc.UpdateSession(context.Background(), 1, plan.ID, plan.Sessions[1].ID, dto.SessionUpdateRequest{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, "reviewed mitochondria", updated.Sessions[1].Notes)
}

func TestStudyPlanServiceUnknownSession(t *testing.T) {
	gen := &stubGenerator{planFn: func(context.Context, ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
		return generatedPlan(), nil
	}}
	svc, materialID := setupStudyPlanService(t, gen)

	plan, err := svc.Create(context.Background(), 1, dto.StudyPlanCreateRequest{
		Subject:     "biology",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	})
	require.NoError(t, err)

	completed := true
	_, err = svc.UpdateSession(context.Background(), 1, plan.ID, "missing-session", dto.SessionUpdateRequest{Completed: &completed})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStudyPlanServiceForeignPlanHidden(t *testing.T) {
	gen := &stubGenerator{planFn: func(context.Context, ai.StudyPlanInput) (ai.GeneratedStudyPlan, error) {
		return generatedPlan(), nil
	}}
	svc, materialID := setupStudyPlanService(t, gen)

	plan, err := svc.Create(context.Background(), 1, dto.StudyPlanCreateRequest{
		Subject:     "biology",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, plan.ID)
	require.ErrorIs(t, err, ErrPlanNotFound)

	err = svc.Delete(context.Background(), 2, plan.ID)
	require.ErrorIs(t, err, ErrPlanNotFound)
}
