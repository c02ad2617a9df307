package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company owns users and teams; all scoping in the system is by company.
type Company struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Teams     []Team    `json:"teams,omitempty" gorm:"foreignKey:CompanyID"`
	Users     []User    `json:"users,omitempty" gorm:"foreignKey:CompanyID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}

// BeforeCreate assigns the primary key
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
