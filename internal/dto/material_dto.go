package dto

import (
	"time"

	"github.com/edugenius/edugenius-api/internal/models"
)

// MaterialResponse is the API representation of an uploaded study material.
type MaterialResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	Summary     string    `json:"summary,omitempty"`
	KeyPoints   []string  `json:"key_points,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMaterialResponse maps a material model into its response representation.
func NewMaterialResponse(material models.StudyMaterial) MaterialResponse {
	return MaterialResponse{
		ID:          material.ID,
		Title:       material.Title,
		Description: material.Description,
		FileURL:     material.FileURL,
		FileType:    material.FileType,
		FileSize:    material.FileSize,
		Summary:     material.Summary,
		KeyPoints:   material.KeyPointList(),
		Tags:        material.TagList(),
		Subject:     material.Subject,
		Difficulty:  material.Difficulty,
		CreatedAt:   material.CreatedAt,
	}
}

// NewMaterialResponseSlice maps a list of materials into responses.
func NewMaterialResponseSlice(materials []models.StudyMaterial) []MaterialResponse {
	responses := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		responses = append(responses, NewMaterialResponse(material))
	}
	return responses
}
