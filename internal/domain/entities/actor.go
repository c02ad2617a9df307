package entities

import "github.com/google/uuid"

// Actor is the already-resolved identity on whose behalf a core
// operation runs. The calling layer resolves it (JWT middleware here);
// core operations never look identity up themselves.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  UserRole  `json:"role"`
}

// CanEdit reports whether the actor may create or mutate work items
func (a Actor) CanEdit() bool {
	return a.Role == RoleAdmin || a.Role == RoleEditor
}

// CanArchive reports whether the actor may archive meetings
func (a Actor) CanArchive() bool {
	return a.Role == RoleAdmin || a.Role == RoleArchiver
}

// CanViewBoard reports whether the actor may read the board dashboard
func (a Actor) CanViewBoard() bool {
	return a.Role == RoleAdmin || a.Role == RoleBoard
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
