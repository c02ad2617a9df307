package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RockStatus represents the health of a quarterly priority
type RockStatus string

const (
	RockStatusOnTrack  RockStatus = "ON_TRACK"
	RockStatusOffTrack RockStatus = "OFF_TRACK"
	RockStatusDone     RockStatus = "DONE"
)

// IsValid checks if the rock status is valid
func (s RockStatus) IsValid() bool {
	switch s {
	case RockStatusOnTrack, RockStatusOffTrack, RockStatusDone:
		return true
	}
	return false
}

// Rock is a quarterly strategic priority tracked per team. Rocks live
// outside the meeting lifecycle; they feed the board dashboard and the
// summarization prompt.
type Rock struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	Title       string          `json:"title" gorm:"type:varchar(255);not null"`
	Description *string         `json:"description,omitempty" gorm:"type:text"`
	Status      RockStatus      `json:"status" gorm:"type:varchar(20);not null;default:'ON_TRACK';index"`
	OwnerID     uuid.UUID       `json:"owner_id" gorm:"type:uuid;not null"`
	Owner       *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	TeamID      uuid.UUID       `json:"team_id" gorm:"type:uuid;not null;index"`
	Team        *Team           `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Milestones  []RockMilestone `json:"milestones,omitempty" gorm:"foreignKey:RockID"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Rock
func (Rock) TableName() string {
	return "rocks"
}

// BeforeCreate assigns the primary key
func (r *Rock) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RockMilestone is an intermediate checkpoint on a rock
type RockMilestone struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	RockID    uuid.UUID  `json:"rock_id" gorm:"type:uuid;not null;index"`
	Title     string     `json:"title" gorm:"type:varchar(255);not null"`
	Done      bool       `json:"done" gorm:"not null;default:false"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for RockMilestone
func (RockMilestone) TableName() string {
	return "rock_milestones"
}

// BeforeCreate assigns the primary key
func (m *RockMilestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
