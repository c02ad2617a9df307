package workitem

import (
	"time"
)

// CreateTodoRequest represents the request to create a todo
type CreateTodoRequest struct {
	MeetingID   string     `json:"meeting_id" validate:"required,uuid"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	OwnerID     *string    `json:"owner_id,omitempty" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTodoRequest represents the request to update a todo
type UpdateTodoRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS DONE CARRY_FORWARD"`
	OwnerID     *string    `json:"owner_id,omitempty" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClearDue    bool       `json:"clear_due,omitempty"`
}

// CreateIssueRequest represents the request to create an issue
type CreateIssueRequest struct {
	MeetingID   string  `json:"meeting_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// UpdateIssueRequest represents the request to update an issue
type UpdateIssueRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=OPEN IN_PROGRESS SOLVED CARRY_FORWARD"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// SubmitRatingRequest represents the request to submit a meeting rating
type SubmitRatingRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid"`
	Score     int    `json:"score" validate:"required,min=1,max=10"`
}

// CreateMetricRequest represents the request to create a scorecard metric
type CreateMetricRequest struct {
	TeamID string  `json:"team_id" validate:"required,uuid"`
	Name   string  `json:"name" validate:"required,min=1,max=255"`
	Target float64 `json:"target" validate:"required"`
	Unit   string  `json:"unit" validate:"omitempty,max=50"`
}

// UpdateMetricRequest represents the request to update a scorecard metric
type UpdateMetricRequest struct {
	Name   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Target *float64 `json:"target,omitempty"`
	Unit   *string  `json:"unit,omitempty" validate:"omitempty,max=50"`
}

// UpsertEntryRequest represents the request to record a scorecard entry
type UpsertEntryRequest struct {
	MetricID  string  `json:"metric_id" validate:"required,uuid"`
	MeetingID string  `json:"meeting_id" validate:"required,uuid"`
	Actual    float64 `json:"actual"`
}
