package models

import (
	"encoding/json"
	"math"
	"time"

	"gorm.io/datatypes"
)

// Session is one scheduled study block inside a plan.
type Session struct {
	ID              string    `json:"id"`
	Day             int       `json:"day"`
	Date            time.Time `json:"date"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	MaterialIDs     []uint    `json:"material_ids,omitempty"`
	Activities      []string  `json:"activities,omitempty"`
	Completed       bool      `json:"completed"`
	Notes           string    `json:"notes,omitempty"`
}

// StudyPlan is a generated schedule of study sessions owned by one user.
// Progress is derived from the sessions document at read time and never stored.
type StudyPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Subject     string         `gorm:"size:128" json:"subject"`
	ExamDate    *time.Time     `json:"exam_date"`
	MaterialIDs datatypes.JSON `gorm:"type:json" json:"-"`
	Sessions    datatypes.JSON `gorm:"type:json" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// SetSessions serializes the session list into the JSON storage column.
func (p *StudyPlan) SetSessions(sessions []Session) {
	data, err := json.Marshal(sessions)
	if err != nil {
		p.Sessions = datatypes.JSON([]byte("[]"))
		return
	}
	p.Sessions = datatypes.JSON(data)
}

// SessionList deserializes the stored sessions into a Go slice.
func (p StudyPlan) SessionList() []Session {
	if len(p.Sessions) == 0 {
		return nil
	}

	var sessions []Session
	if err := json.Unmarshal(p.Sessions, &sessions); err != nil {
		return nil
	}

	return sessions
}

// SetMaterialIDs serializes the referenced material ids into the JSON storage column.
func (p *StudyPlan) SetMaterialIDs(ids []uint) {
	data, err := json.Marshal(ids)
	if err != nil {
		p.MaterialIDs = datatypes.JSON([]byte("[]"))
		return
	}
	p.MaterialIDs = datatypes.JSON(data)
}

// MaterialIDList deserializes the referenced material ids into a Go slice.
func (p StudyPlan) MaterialIDList() []uint {
	if len(p.MaterialIDs) == 0 {
		return nil
	}

	var ids []uint
	if err := json.Unmarshal(p.MaterialIDs, &ids); err != nil {
		return nil
	}

	return ids
}

// CalculateProgress returns the rounded percentage of completed sessions.
// A plan without sessions reports zero.
func (p StudyPlan) CalculateProgress() int {
	sessions := p.SessionList()
	if len(sessions) == 0 {
		return 0
	}

	completed := 0
	for _, session := range sessions {
		if session.Completed {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(len(sessions))))
}
