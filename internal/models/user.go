package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Learning style categories follow the VARK model. The declaration order is
// the tie-break order when two counters are equal.
const (
	StyleVisual      = "visual"
	StyleAuditory    = "auditory"
	StyleReading     = "reading"
	StyleKinesthetic = "kinesthetic"
	StyleUnknown     = "unknown"
)

// LearningStyle accumulates per-category signals from assessments.
type LearningStyle struct {
	Visual        int    `gorm:"not null;default:0" json:"visual"`
	Auditory      int    `gorm:"not null;default:0" json:"auditory"`
	Reading       int    `gorm:"not null;default:0" json:"reading"`
	Kinesthetic   int    `gorm:"not null;default:0" json:"kinesthetic"`
	DominantStyle string `gorm:"size:32;not null;default:unknown" json:"dominant_style"`
}

// Dominant returns the category with the strictly greatest counter. Ties keep
// the earliest declared category; all-zero counters map to "unknown".
func (l LearningStyle) Dominant() string {
	counters := []struct {
		name  string
		value int
	}{
		{StyleVisual, l.Visual},
		{StyleAuditory, l.Auditory},
		{StyleReading, l.Reading},
		{StyleKinesthetic, l.Kinesthetic},
	}

	best := StyleUnknown
	max := 0
	for _, counter := range counters {
		if counter.value > max {
			best = counter.name
			max = counter.value
		}
	}

	return best
}

// User represents a student account.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string         `gorm:"size:255;not null" json:"-"`
	School        string         `gorm:"size:255" json:"school"`
	GradeLevel    string         `gorm:"size:64" json:"grade_level"`
	Subjects      datatypes.JSON `gorm:"type:json" json:"-"`
	LearningStyle LearningStyle  `gorm:"embedded;embeddedPrefix:style_" json:"learning_style"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BeforeSave keeps the dominant style in step with the counters.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.LearningStyle.DominantStyle = u.LearningStyle.Dominant()
	return nil
}

// SetSubjects serializes the subject list into the JSON storage column.
func (u *User) SetSubjects(subjects []string) {
	data, err := json.Marshal(subjects)
	if err != nil {
		u.Subjects = datatypes.JSON([]byte("[]"))
		return
	}
	u.Subjects = datatypes.JSON(data)
}

// SubjectList deserializes the stored subjects into a Go slice.
func (u User) SubjectList() []string {
	if len(u.Subjects) == 0 {
		return nil
	}

	var subjects []string
	if err := json.Unmarshal(u.Subjects, &subjects); err != nil {
		return nil
	}

	return subjects
}
