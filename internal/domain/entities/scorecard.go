package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScorecardMetric defines a numeric target a team tracks week over week
type ScorecardMetric struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Target    float64   `json:"target" gorm:"not null"`
	Unit      string    `json:"unit" gorm:"type:varchar(50);not null"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;index"`
	Team      *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ScorecardMetric
func (ScorecardMetric) TableName() string {
	return "scorecard_metrics"
}

// BeforeCreate assigns the primary key
func (m *ScorecardMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// EntryStatus is derived from the actual-vs-target ratio at write time
// and stored, never recomputed on read.
type EntryStatus string

const (
	EntryStatusOnTrack  EntryStatus = "ON_TRACK"
	EntryStatusOffTrack EntryStatus = "OFF_TRACK"
	EntryStatusMissed   EntryStatus = "MISSED"
)

// DeriveEntryStatus computes an entry status: meeting the target is
// ON_TRACK, at least 80% of it is OFF_TRACK, anything less is MISSED.
func DeriveEntryStatus(actual, target float64) EntryStatus {
	switch {
	case actual >= target:
		return EntryStatusOnTrack
	case actual >= 0.8*target:
		return EntryStatusOffTrack
	default:
		return EntryStatusMissed
	}
}

// ScorecardEntry records one metric's actual for one meeting
type ScorecardEntry struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	Actual    float64          `json:"actual" gorm:"not null"`
	Status    EntryStatus      `json:"status" gorm:"type:varchar(20);not null"`
	MetricID  uuid.UUID        `json:"metric_id" gorm:"type:uuid;not null;uniqueIndex:idx_scorecard_entries_metric_meeting"`
	Metric    *ScorecardMetric `json:"metric,omitempty" gorm:"foreignKey:MetricID"`
	MeetingID uuid.UUID        `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex:idx_scorecard_entries_metric_meeting"`
	Meeting   *Meeting         `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ScorecardEntry
func (ScorecardEntry) TableName() string {
	return "scorecard_entries"
}

// BeforeCreate assigns the primary key
func (e *ScorecardEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
