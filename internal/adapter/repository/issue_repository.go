package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// IssueRepository handles issue data access
type IssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *IssueRepository) WithTx(tx *gorm.DB) *IssueRepository {
	return &IssueRepository{db: tx}
}

// Create inserts a new issue
func (r *IssueRepository) Create(ctx context.Context, issue *entities.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

// FindByID retrieves an issue with its parent meeting
func (r *IssueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Issue, error) {
	var issue entities.Issue
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Preload("Creator").
		Preload("Owner").
		Where("id = ?", id).
		First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListByMeeting retrieves all issues of a meeting ordered by priority
// rank, then recency. Priority is a text enum so the rank is spelled
// out instead of sorted lexically.
func (r *IssueRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Issue, error) {
	var issues []*entities.Issue
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Owner").
		Where("meeting_id = ?", meetingID).
		Order("CASE priority WHEN 'CRITICAL' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END").
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

// Save persists changes to an existing issue
func (r *IssueRepository) Save(ctx context.Context, issue *entities.Issue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

// Delete removes an issue
func (r *IssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Issue{}, "id = ?", id).Error
}
