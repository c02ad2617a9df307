package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// DraftRepository handles AI draft data access
type DraftRepository struct {
	db *gorm.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *DraftRepository) WithTx(tx *gorm.DB) *DraftRepository {
	return &DraftRepository{db: tx}
}

// Create inserts a new draft
func (r *DraftRepository) Create(ctx context.Context, draft *entities.AiDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

// FindByID retrieves a draft
func (r *DraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AiDraft, error) {
	var draft entities.AiDraft
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// ListByMeeting retrieves a meeting's drafts, newest first
func (r *DraftRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.AiDraft, error) {
	var drafts []*entities.AiDraft
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&drafts).Error
	return drafts, err
}

// MarkDisposed transitions a draft out of PENDING if and only if it is
// still PENDING, returning the number of rows transitioned. A zero
// count means the draft was already disposed.
func (r *DraftRepository) MarkDisposed(ctx context.Context, id uuid.UUID, status entities.DraftStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.AiDraft{}).
		Where("id = ? AND status = ?", id, entities.DraftStatusPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}
