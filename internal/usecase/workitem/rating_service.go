package workitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// RatingService handles meeting rating submission
type RatingService struct {
	db          *gorm.DB
	ratingRepo  *repository.RatingRepository
	meetingRepo *repository.MeetingRepository
	recorder    *audit.Recorder
	logger      *zap.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(
	db *gorm.DB,
	ratingRepo *repository.RatingRepository,
	meetingRepo *repository.MeetingRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		db:          db,
		ratingRepo:  ratingRepo,
		meetingRepo: meetingRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// Submit records the actor's 1-10 score for an ACTIVE meeting. At most
// one rating exists per (user, meeting): resubmission updates the
// stored score instead of creating a duplicate.
func (s *RatingService) Submit(ctx context.Context, meetingID uuid.UUID, score int, actor entities.Actor) (*entities.Rating, error) {
	if !entities.ValidScore(score) {
		return nil, ucerrors.Validationf("rating must be between %d and %d",
			entities.MinRatingScore, entities.MaxRatingScore)
	}

	var rating *entities.Rating
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ratings := s.ratingRepo.WithTx(tx)

		if _, err := requireActiveMeeting(ctx, s.meetingRepo.WithTx(tx), meetingID, "rate"); err != nil {
			return err
		}

		record := &entities.Rating{
			Score:     score,
			UserID:    actor.ID,
			MeetingID: meetingID,
		}
		if err := ratings.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to store rating: %w", err)
		}

		// Re-read through the unique index: on the conflict path the
		// stored row keeps its original id, not the one just generated.
		stored, err := ratings.FindByUserAndMeeting(ctx, actor.ID, meetingID)
		if err != nil {
			return fmt.Errorf("failed to load rating: %w", err)
		}
		rating = stored

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "Rating",
			EntityID:   rating.ID,
			After:      rating,
			ActorID:    actor.ID,
			MeetingID:  &meetingID,
		})
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// ListByMeeting retrieves a meeting's ratings
func (s *RatingService) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Rating, error) {
	ratings, err := s.ratingRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}
