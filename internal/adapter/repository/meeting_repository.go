package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// MeetingRepository handles meeting data access
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *MeetingRepository) WithTx(tx *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: tx}
}

// Create inserts a new meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting with its team
func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Team").
		Preload("PreviousMeeting").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindByIDWithMembers retrieves a meeting with the full team roster,
// as needed by the rating-completeness gate
func (r *MeetingRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Team").
		Preload("Team.Members").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindActiveByTeam retrieves the team's single ACTIVE meeting, if any
func (r *MeetingRepository) FindActiveByTeam(ctx context.Context, teamID uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, entities.MeetingStatusActive).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindSuccessor resolves the derived forward link: the meeting whose
// previous_meeting_id points at the given meeting
func (r *MeetingRepository) FindSuccessor(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("previous_meeting_id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	TeamID *uuid.UUID
	Status *entities.MeetingStatus
	Limit  int
}

// List retrieves meetings ordered by meeting date, newest first
func (r *MeetingRepository) List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := r.db.WithContext(ctx).Preload("Team").Order("meeting_date DESC")

	if filters.TeamID != nil {
		query = query.Where("team_id = ?", *filters.TeamID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	err := query.Find(&meetings).Error
	return meetings, err
}

// WorkItemCounts holds per-meeting totals for the list view
type WorkItemCounts struct {
	Todos   int64
	Issues  int64
	Ratings int64
}

// CountWorkItems returns todo/issue/rating totals grouped by meeting
func (r *MeetingRepository) CountWorkItems(ctx context.Context, meetingIDs []uuid.UUID) (map[uuid.UUID]WorkItemCounts, error) {
	counts := make(map[uuid.UUID]WorkItemCounts, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return counts, nil
	}

	type row struct {
		MeetingID uuid.UUID
		Total     int64
	}

	tally := func(model any, assign func(*WorkItemCounts, int64)) error {
		var rows []row
		err := r.db.WithContext(ctx).
			Model(model).
			Select("meeting_id, COUNT(*) AS total").
			Where("meeting_id IN ?", meetingIDs).
			Group("meeting_id").
			Find(&rows).Error
		if err != nil {
			return err
		}
		for _, rw := range rows {
			c := counts[rw.MeetingID]
			assign(&c, rw.Total)
			counts[rw.MeetingID] = c
		}
		return nil
	}

	if err := tally(&entities.Todo{}, func(c *WorkItemCounts, n int64) { c.Todos = n }); err != nil {
		return nil, err
	}
	if err := tally(&entities.Issue{}, func(c *WorkItemCounts, n int64) { c.Issues = n }); err != nil {
		return nil, err
	}
	if err := tally(&entities.Rating{}, func(c *WorkItemCounts, n int64) { c.Ratings = n }); err != nil {
		return nil, err
	}
	return counts, nil
}

// ListRecentByTeam retrieves the team's most recent meetings with the
// relations the board aggregation needs
func (r *MeetingRepository) ListRecentByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("meeting_date DESC").
		Limit(limit).
		Find(&meetings).Error
	return meetings, err
}

// MarkArchived transitions a meeting to ARCHIVED if and only if it is
// still ACTIVE, returning the number of rows transitioned. A zero count
// means a concurrent archiver won.
func (r *MeetingRepository) MarkArchived(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, entities.MeetingStatusActive).
		Updates(map[string]interface{}{
			"status":      entities.MeetingStatusArchived,
			"archived_at": at,
		})
	return res.RowsAffected, res.Error
}
