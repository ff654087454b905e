package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// StudyMaterial represents an uploaded study document and its AI-derived metadata.
type StudyMaterial struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	FileURL       string         `gorm:"size:512" json:"file_url"`
	FilePublicID  string         `gorm:"size:255" json:"-"`
	FileType      string         `gorm:"size:64" json:"file_type"`
	FileSize      int64          `json:"file_size"`
	ExtractedText string         `gorm:"type:text" json:"-"`
	Summary       string         `gorm:"type:text" json:"summary"`
	KeyPoints     datatypes.JSON `gorm:"type:json" json:"-"`
	Tags          datatypes.JSON `gorm:"type:json" json:"-"`
	Subject       string         `gorm:"size:128" json:"subject"`
	Difficulty    string         `gorm:"size:32" json:"difficulty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// SetKeyPoints serializes the key point list into the JSON storage column.
func (m *StudyMaterial) SetKeyPoints(points []string) {
	m.KeyPoints = marshalStringList(points)
}

// KeyPointList deserializes the stored key points into a Go slice.
func (m StudyMaterial) KeyPointList() []string {
	return unmarshalStringList(m.KeyPoints)
}

// SetTags serializes the tag list into the JSON storage column.
func (m *StudyMaterial) SetTags(tags []string) {
	m.Tags = marshalStringList(tags)
}

// TagList deserializes the stored tags into a Go slice.
func (m StudyMaterial) TagList() []string {
	return unmarshalStringList(m.Tags)
}

func marshalStringList(values []string) datatypes.JSON {
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func unmarshalStringList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}

	return values
}
