package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edugenius/edugenius-api/internal/repository"
)

func TestActivityServiceRecordAndList(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewActivityRepository(db)
	svc := NewActivityService(repo, nil, "edugenius", testLogger())

	entityID := uint(7)
	svc.Record(context.Background(), ActivityEntry{
		UserID:     1,
		Action:     " Uploaded ",
		EntityType: "Material",
		EntityID:   &entityID,
		Metadata:   map[string]interface{}{"title": "Notes"},
	})
	svc.Record(context.Background(), ActivityEntry{UserID: 1, Action: "generated", EntityType: "quiz"})
	svc.Record(context.Background(), ActivityEntry{UserID: 2, Action: "generated", EntityType: "quiz"})

	list, err := svc.List(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), list.Total)
	require.Len(t, list.Entries, 2)

	// Action and entity type are normalised on write.
	for _, entry := range list.Entries {
		if entry.EntityType == "material" {
			require.Equal(t, "uploaded", entry.Action)
		}
	}
}

func TestActivityServiceIgnoresBlankEntries(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewActivityRepository(db)
	svc := NewActivityService(repo, nil, "edugenius", testLogger())

	svc.Record(context.Background(), ActivityEntry{UserID: 1, Action: "  ", EntityType: "quiz"})
	svc.Record(context.Background(), ActivityEntry{UserID: 1, Action: "generated", EntityType: ""})

	list, err := svc.List(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), list.Total)
}

func TestActivityServicePagination(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewActivityRepository(db)
	svc := NewActivityService(repo, nil, "edugenius", testLogger())

	for i := 0; i < 5; i++ {
		svc.Record(context.Background(), ActivityEntry{UserID: 1, Action: "generated", EntityType: "quiz"})
	}

	page, err := svc.List(context.Background(), 1, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), page.Total)
	require.Len(t, page.Entries, 2)
}
