package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDominantStyle(t *testing.T) {
	style := LearningStyle{Visual: 2, Auditory: 5, Reading: 1}
	require.Equal(t, StyleAuditory, style.Dominant())
}

func TestDominantStyleTieKeepsEarliestCategory(t *testing.T) {
	style := LearningStyle{Visual: 3, Auditory: 3}
	require.Equal(t, StyleVisual, style.Dominant())

	style = LearningStyle{Reading: 4, Kinesthetic: 4}
	require.Equal(t, StyleReading, style.Dominant())
}

func TestDominantStyleAllZero(t *testing.T) {
	require.Equal(t, StyleUnknown, LearningStyle{}.Dominant())
}

func TestUserSubjectsRoundTrip(t *testing.T) {
	user := User{}
	user.SetSubjects([]string{"math", "physics"})
	require.Equal(t, []string{"math", "physics"}, user.SubjectList())
}
