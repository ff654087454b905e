package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateProgress(t *testing.T) {
	plan := StudyPlan{}
	plan.SetSessions([]Session{
		{ID: "s1", Completed: true},
		{ID: "s2"},
		{ID: "s3"},
		{ID: "s4"},
	})
	require.Equal(t, 25, plan.CalculateProgress())
}

func TestCalculateProgressNoSessions(t *testing.T) {
	require.Equal(t, 0, StudyPlan{}.CalculateProgress())
}

func TestCalculateProgressAllComplete(t *testing.T) {
	plan := StudyPlan{}
	plan.SetSessions([]Session{
		{ID: "s1", Completed: true},
		{ID: "s2", Completed: true},
	})
	require.Equal(t, 100, plan.CalculateProgress())
}

func TestCalculateProgressRounds(t *testing.T) {
	plan := StudyPlan{}
	plan.SetSessions([]Session{
		{ID: "s1", Completed: true},
		{ID: "s2"},
		{ID: "s3"},
	})
	require.Equal(t, 33, plan.CalculateProgress())
}
