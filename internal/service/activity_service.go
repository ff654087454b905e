package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
)

// ActivityEntry captures the details required to persist a feed entry.
type ActivityEntry struct {
	UserID     uint
	Action     string
	EntityType string
	EntityID   *uint
	Metadata   map[string]interface{}
}

// ActivityRecorder defines behaviour for recording activity feed entries.
// Recording is best-effort: failures are logged, never propagated into the
// operation that triggered them.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// ActivityService records and lists per-user activity.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, userID uint, limit, offset int) (dto.ActivityListResponse, error)
}

type activityService struct {
	repo        repository.ActivityRepository
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
}

type activityEvent struct {
	UserID     uint                   `json:"user_id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	SentAt     time.Time              `json:"sent_at"`
}

// NewActivityService constructs the activity service. The NATS connection is
// optional; a nil connection disables event publishing.
func NewActivityService(repo repository.ActivityRepository, natsConn *nats.Conn, subjectBase string, logger zerolog.Logger) ActivityService {
	subject := ""
	if subjectBase != "" {
		subject = strings.ReplaceAll(subjectBase, ":", ".") + ".activity"
	}

	return &activityService{
		repo:        repo,
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	if strings.TrimSpace(entry.Action) == "" || strings.TrimSpace(entry.EntityType) == "" {
		return
	}

	model := models.Activity{
		UserID:     entry.UserID,
		Action:     strings.ToLower(strings.TrimSpace(entry.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(entry.EntityType)),
		EntityID:   entry.EntityID,
		Metadata:   entry.Metadata,
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist activity entry")
		return
	}

	s.publish(model)
}

func (s *activityService) publish(model models.Activity) {
	if s.nats == nil || s.natsSubject == "" {
		return
	}

	payload, err := json.Marshal(activityEvent{
		UserID:     model.UserID,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   model.Metadata,
		SentAt:     time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish activity event")
	}
}

func (s *activityService) List(ctx context.Context, userID uint, limit, offset int) (dto.ActivityListResponse, error) {
	entries, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	responses := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActivityResponse(entry))
	}

	return dto.ActivityListResponse{Entries: responses, Total: total}, nil
}
