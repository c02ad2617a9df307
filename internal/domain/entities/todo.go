package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoStatus represents the state of an action todo
type TodoStatus string

const (
	TodoStatusNotStarted   TodoStatus = "NOT_STARTED"
	TodoStatusInProgress   TodoStatus = "IN_PROGRESS"
	TodoStatusDone         TodoStatus = "DONE"
	TodoStatusCarryForward TodoStatus = "CARRY_FORWARD"
)

// IsValid checks if the todo status is valid
func (s TodoStatus) IsValid() bool {
	switch s {
	case TodoStatusNotStarted, TodoStatusInProgress, TodoStatusDone, TodoStatusCarryForward:
		return true
	}
	return false
}

// Todo is an action item owned by exactly one meeting. Carried-forward
// copies reference their origin through CarriedFromID; the link is a
// lookup only and never mutates the source item.
type Todo struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Title         string     `json:"title" gorm:"type:varchar(255);not null"`
	Description   *string    `json:"description,omitempty" gorm:"type:text"`
	Status        TodoStatus `json:"status" gorm:"type:varchar(20);not null;default:'NOT_STARTED';index"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	OwnerID       *uuid.UUID `json:"owner_id,omitempty" gorm:"type:uuid;index"`
	Owner         *User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	MeetingID     uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Meeting       *Meeting   `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`
	CarriedFromID *uuid.UUID `json:"carried_from_id,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Todo
func (Todo) TableName() string {
	return "todos"
}

// BeforeCreate assigns the primary key
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ShouldCarryForward reports whether the todo propagates to the successor
// meeting when its parent is archived at the given moment: either it is
// explicitly marked CARRY_FORWARD, or it is unfinished and overdue.
func (t *Todo) ShouldCarryForward(at time.Time) bool {
	if t.Status == TodoStatusCarryForward {
		return true
	}
	return t.Status != TodoStatusDone && t.DueDate != nil && t.DueDate.Before(at)
}

// CarryInto builds the NOT_STARTED copy of this todo for the successor
// meeting. The due date, when present, advances by one week.
func (t *Todo) CarryInto(nextMeetingID uuid.UUID) *Todo {
	copied := &Todo{
		Title:         t.Title,
		Description:   t.Description,
		Status:        TodoStatusNotStarted,
		OwnerID:       t.OwnerID,
		MeetingID:     nextMeetingID,
		CarriedFromID: &t.ID,
	}
	if t.DueDate != nil {
		due := t.DueDate.AddDate(0, 0, 7)
		copied.DueDate = &due
	}
	return copied
}
