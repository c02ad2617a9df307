package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// RatingRepository handles rating data access
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return &RatingRepository{db: tx}
}

// Upsert inserts the rating or, when the (user, meeting) row already
// exists, updates its score. Racing first-time submissions converge on
// the unique index instead of failing.
func (r *RatingRepository) Upsert(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "meeting_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(rating).Error
}

// FindByUserAndMeeting retrieves a user's rating for a meeting
func (r *RatingRepository) FindByUserAndMeeting(ctx context.Context, userID, meetingID uuid.UUID) (*entities.Rating, error) {
	var rating entities.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND meeting_id = ?", userID, meetingID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByMeeting retrieves all ratings of a meeting
func (r *RatingRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ?", meetingID).
		Find(&ratings).Error
	return ratings, err
}
