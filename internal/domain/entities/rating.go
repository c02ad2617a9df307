package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating score bounds
const (
	MinRatingScore = 1
	MaxRatingScore = 10
)

// Rating is one user's 1-10 score for a meeting. At most one rating
// exists per (user, meeting); resubmission updates the score.
type Rating struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_meeting"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_meeting"`
	Meeting   *Meeting  `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Rating
func (Rating) TableName() string {
	return "ratings"
}

// BeforeCreate assigns the primary key
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidScore reports whether a score is inside the allowed range
func ValidScore(score int) bool {
	return score >= MinRatingScore && score <= MaxRatingScore
}
