package directory

import (
	"time"
)

// CreateCompanyRequest represents the request to create a company
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=255"`
}

// AddMemberRequest represents the request to add a team member
type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name" validate:"required,min=1,max=255"`
	Role      string `json:"role" validate:"required,oneof=ADMIN EDITOR VIEWER BOARD ARCHIVER"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// CreateRockRequest represents the request to create a rock
type CreateRockRequest struct {
	TeamID  string     `json:"team_id" validate:"required,uuid"`
	Title   string     `json:"title" validate:"required,min=1,max=255"`
	OwnerID string     `json:"owner_id" validate:"required,uuid"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// AddMilestoneRequest represents the request to add a rock milestone
type AddMilestoneRequest struct {
	Title   string     `json:"title" validate:"required,min=1,max=255"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// SetMilestoneDoneRequest represents the request to mark a milestone done
type SetMilestoneDoneRequest struct {
	Done *bool `json:"done" validate:"required"`
}

// UpdateRockRequest represents the request to update a rock
type UpdateRockRequest struct {
	Title   *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Status  *string    `json:"status,omitempty" validate:"omitempty,oneof=ON_TRACK OFF_TRACK DONE"`
	OwnerID *string    `json:"owner_id,omitempty" validate:"omitempty,uuid"`
	DueDate *time.Time `json:"due_date,omitempty"`
}
