package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team runs one recurring weekly meeting
type Team struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	Name      string       `json:"name" gorm:"type:varchar(255);not null"`
	CompanyID uuid.UUID    `json:"company_id" gorm:"type:uuid;not null;index"`
	Company   *Company     `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Members   []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns the primary key
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// MemberIDs returns the user ids of all team members
func (t *Team) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// TeamMember links a user to a team with a per-team role
type TeamMember struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'EDITOR'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}

// BeforeCreate assigns the primary key
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
