package meeting

import (
	"time"
)

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	TeamID      string     `json:"team_id" validate:"required,uuid"`
	Title       string     `json:"title" validate:"omitempty,max=255"`
	MeetingDate *time.Time `json:"meeting_date,omitempty"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	TeamID *string `query:"team_id" validate:"omitempty,uuid"`
	Status *string `query:"status" validate:"omitempty,oneof=ACTIVE ARCHIVED"`
	Limit  int     `query:"limit" validate:"omitempty,min=1,max=100"`
}
