package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edugenius/edugenius-api/internal/dto"
	"github.com/edugenius/edugenius-api/internal/models"
	"github.com/edugenius/edugenius-api/internal/repository"
	"github.com/edugenius/edugenius-api/pkg/ai"
	"github.com/edugenius/edugenius-api/pkg/extract"
)

// ErrMaterialNotFound covers both absent materials and materials owned by
// someone else, so existence does not leak across accounts.
var ErrMaterialNotFound = errors.New("material not found")

// ErrUnsupportedFileType indicates the upload is not a PDF/DOC/DOCX document.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// FileStore abstracts uploading binary data and destroying stored assets.
type FileStore interface {
	Upload(ctx context.Context, name string, reader io.Reader) (url string, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}

// MaterialService orchestrates study material ingestion and lifecycle.
type MaterialService interface {
	Upload(ctx context.Context, userID uint, file *multipart.FileHeader, title, description string) (dto.MaterialResponse, error)
	List(ctx context.Context, userID uint) ([]dto.MaterialResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.MaterialResponse, error)
	Delete(ctx context.Context, userID, id uint) error
}

type materialService struct {
	materials repository.MaterialRepository
	generator ai.Generator
	store     FileStore
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewMaterialService constructs a MaterialService instance.
func NewMaterialService(materials repository.MaterialRepository, generator ai.Generator, store FileStore, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) MaterialService {
	return &materialService{
		materials: materials,
		generator: generator,
		store:     store,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) Upload(ctx context.Context, userID uint, file *multipart.FileHeader, title, description string) (dto.MaterialResponse, error) {
	if file == nil {
		return dto.MaterialResponse{}, fmt.Errorf("material file is required")
	}

	data, err := readFile(file)
	if err != nil {
		return dto.MaterialResponse{}, err
	}

	mime := mimetype.Detect(data)
	if !isAllowedDocument(mime) {
		return dto.MaterialResponse{}, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mime.String())
	}

	if title == "" {
		title = file.Filename
	}

	material := models.StudyMaterial{
		UserID:      userID,
		Title:       title,
		Description: description,
		FileType:    mime.String(),
		FileSize:    file.Size,
	}

	// Legacy .doc has no extractor; the file is stored without summary metadata.
	text, err := extract.Text(mime.String(), data)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", file.Filename).Msg("text extraction skipped")
	} else {
		material.ExtractedText = text

		summary, err := s.generator.SummarizeMaterial(ctx, title, text)
		if err != nil {
			return dto.MaterialResponse{}, fmt.Errorf("failed to summarize material: %w", err)
		}

		material.Summary = summary.Summary
		material.Subject = summary.Subject
		material.Difficulty = summary.Difficulty
		material.SetKeyPoints(summary.KeyPoints)
		material.SetTags(summary.Tags)
	}

	url, publicID, err := s.store.Upload(ctx, file.Filename, bytes.NewReader(data))
	if err != nil {
		return dto.MaterialResponse{}, fmt.Errorf("failed to upload file: %w", err)
	}

	material.FileURL = url
	material.FilePublicID = publicID

	if err := s.materials.Create(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	s.logger.Info().Uint("material_id", material.ID).Uint("user_id", userID).Msg("material uploaded")

	s.activity.Record(ctx, ActivityEntry{
		UserID:     userID,
		Action:     "uploaded",
		EntityType: "material",
		EntityID:   &material.ID,
		Metadata:   map[string]interface{}{"title": material.Title, "file_type": material.FileType},
	})

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) List(ctx context.Context, userID uint) ([]dto.MaterialResponse, error) {
	materials, err := s.materials.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewMaterialResponseSlice(materials), nil
}

func (s *materialService) Get(ctx context.Context, userID, id uint) (dto.MaterialResponse, error) {
	material, err := s.ownedMaterial(ctx, userID, id)
	if err != nil {
		return dto.MaterialResponse{}, err
	}

	return dto.NewMaterialResponse(material), nil
}

// Delete removes the backing stored file before the database record. When the
// storage call fails the record is kept and the error surfaces to the caller.
func (s *materialService) Delete(ctx context.Context, userID, id uint) error {
	material, err := s.ownedMaterial(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, material.FilePublicID); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	if err := s.materials.Delete(ctx, material.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("material_id", id).Uint("user_id", userID).Msg("material deleted")

	return nil
}

func (s *materialService) ownedMaterial(ctx context.Context, userID, id uint) (models.StudyMaterial, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudyMaterial{}, ErrMaterialNotFound
		}
		return models.StudyMaterial{}, err
	}

	if material.UserID != userID {
		return models.StudyMaterial{}, ErrMaterialNotFound
	}

	return material, nil
}

func isAllowedDocument(mime *mimetype.MIME) bool {
	allowed := []string{extract.MimePDF, extract.MimeDOC, extract.MimeDOCX}
	for _, a := range allowed {
		if mime.Is(a) {
			return true
		}
	}
	return false
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}
