package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingStatus represents the lifecycle state of a meeting
type MeetingStatus string

const (
	MeetingStatusActive   MeetingStatus = "ACTIVE"
	MeetingStatusArchived MeetingStatus = "ARCHIVED"
)

// Meeting represents one weekly instance of a team's recurring meeting.
// A meeting is editable while ACTIVE and permanently locked once ARCHIVED;
// there is no transition back.
type Meeting struct {
	ID                uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	Title             string        `json:"title" gorm:"type:varchar(255);not null"`
	TeamID            uuid.UUID     `json:"team_id" gorm:"type:uuid;not null;index"`
	Team              *Team         `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Status            MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	MeetingDate       time.Time     `json:"meeting_date" gorm:"not null;index"`
	ArchivedAt        *time.Time    `json:"archived_at,omitempty"`
	PreviousMeetingID *uuid.UUID    `json:"previous_meeting_id,omitempty" gorm:"type:uuid"`
	PreviousMeeting   *Meeting      `json:"previous_meeting,omitempty" gorm:"foreignKey:PreviousMeetingID"`
	CreatedAt         time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// BeforeCreate assigns the primary key
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the meeting is still editable
func (m *Meeting) IsActive() bool {
	return m.Status == MeetingStatusActive
}

// IsArchived reports whether the meeting has been locked
func (m *Meeting) IsArchived() bool {
	return m.Status == MeetingStatusArchived
}

// NextMeetingDate returns the date of the successor created on archive.
func (m *Meeting) NextMeetingDate() time.Time {
	return m.MeetingDate.AddDate(0, 0, 7)
}

// SuccessorTitle builds the deterministic title for the meeting that
// follows this one, e.g. "Leadership Team - Weekly 2026-02-03".
func SuccessorTitle(teamName string, date time.Time) string {
	return fmt.Sprintf("%s - Weekly %s", teamName, date.Format("2006-01-02"))
}
