package handler_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/pkg/ai"
)

func planGenerator() *testGenerator {
	return &testGenerator{
		plan: ai.GeneratedStudyPlan{
			Title: "Two Week Plan",
			Sessions: []ai.GeneratedSession{
				{Day: 1, Title: "Kickoff", DurationMinutes: 60},
				{Day: 2, Title: "Review", DurationMinutes: 45},
			},
		},
	}
}

func TestStudyPlanEndpointsGenerateAndComplete(t *testing.T) {
	app, db := setupApp(t, planGenerator())
	materialID := seedMaterial(t, db, 1)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/study/plans/generate", dto.StudyPlanCreateRequest{
		Subject:     "history",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.StudyPlanResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, "Two Week Plan", created.Data.Title)
	require.Len(t, created.Data.Sessions, 2)
	require.Equal(t, 0, created.Data.Progress)

	completed := true
	target := fmt.Sprintf("/api/study/plans/%d/sessions/%s", created.Data.ID, created.Data.Sessions[0].ID)
	resp, err = app.Test(jsonRequest(t, "PATCH", target, dto.SessionUpdateRequest{Completed: &completed}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Data dto.StudyPlanResponse `json:"data"`
	}
	decodeResponse(t, resp, &updated)
	require.Equal(t, 50, updated.Data.Progress)
	require.True(t, updated.Data.Sessions[0].Completed)
}

func TestStudyPlanEndpointsUnknownSession(t *testing.T) {
	app, db := setupApp(t, planGenerator())
	materialID := seedMaterial(t, db, 1)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/study/plans/generate", dto.StudyPlanCreateRequest{
		Subject:     "history",
		ExamDate:    time.Now().AddDate(0, 0, 14),
		MaterialIDs: []uint{materialID},
	}))
	require.NoError(t, err)

	var created struct {
		Data dto.StudyPlanResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)

	completed := true
	target := fmt.Sprintf("/api/study/plans/%d/sessions/%s", created.Data.ID, "missing")
	resp, err = app.Test(jsonRequest(t, "PATCH", target, dto.SessionUpdateRequest{Completed: &completed}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
