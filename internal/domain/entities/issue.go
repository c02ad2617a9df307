package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueStatus represents the state of a discussion issue
type IssueStatus string

const (
	IssueStatusOpen         IssueStatus = "OPEN"
	IssueStatusInProgress   IssueStatus = "IN_PROGRESS"
	IssueStatusSolved       IssueStatus = "SOLVED"
	IssueStatusCarryForward IssueStatus = "CARRY_FORWARD"
)

// IsValid checks if the issue status is valid
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusSolved, IssueStatusCarryForward:
		return true
	}
	return false
}

// IssuePriority represents issue priority
type IssuePriority string

const (
	IssuePriorityLow      IssuePriority = "LOW"
	IssuePriorityMedium   IssuePriority = "MEDIUM"
	IssuePriorityHigh     IssuePriority = "HIGH"
	IssuePriorityCritical IssuePriority = "CRITICAL"
)

// IsValid checks if the issue priority is valid
func (p IssuePriority) IsValid() bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical:
		return true
	}
	return false
}

// Issue is a discussion item owned by exactly one meeting
type Issue struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	Title         string        `json:"title" gorm:"type:varchar(255);not null"`
	Description   *string       `json:"description,omitempty" gorm:"type:text"`
	Status        IssueStatus   `json:"status" gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Priority      IssuePriority `json:"priority" gorm:"type:varchar(20);not null;default:'MEDIUM';index"`
	CreatorID     uuid.UUID     `json:"creator_id" gorm:"type:uuid;not null"`
	Creator       *User         `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	OwnerID       *uuid.UUID    `json:"owner_id,omitempty" gorm:"type:uuid"`
	Owner         *User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	MeetingID     uuid.UUID     `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Meeting       *Meeting      `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`
	CarriedFromID *uuid.UUID    `json:"carried_from_id,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Issue
func (Issue) TableName() string {
	return "issues"
}

// BeforeCreate assigns the primary key
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ShouldCarryForward reports whether the issue propagates on archive.
// Unlike todos, issues carry whenever unresolved, with no due-date
// heuristic.
func (i *Issue) ShouldCarryForward() bool {
	return i.Status != IssueStatusSolved
}

// CarryInto builds the OPEN copy of this issue for the successor meeting
func (i *Issue) CarryInto(nextMeetingID uuid.UUID) *Issue {
	return &Issue{
		Title:         i.Title,
		Description:   i.Description,
		Status:        IssueStatusOpen,
		Priority:      i.Priority,
		CreatorID:     i.CreatorID,
		OwnerID:       i.OwnerID,
		MeetingID:     nextMeetingID,
		CarriedFromID: &i.ID,
	}
}
