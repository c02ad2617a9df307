package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// maxAuditPage caps how many audit rows a single read may return
const maxAuditPage = 200

// AuditRepository provides the admin read path over audit records.
// Writes go through the audit recorder, never through this type.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// AuditFilters represents filter options for listing audit records
type AuditFilters struct {
	MeetingID  *uuid.UUID
	EntityType string
	EntityID   *uuid.UUID
	Limit      int
}

// List retrieves audit records, newest first
func (r *AuditRepository) List(ctx context.Context, filters AuditFilters) ([]*entities.AuditLog, error) {
	var logs []*entities.AuditLog
	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")

	if filters.MeetingID != nil {
		query = query.Where("meeting_id = ?", *filters.MeetingID)
	}
	if filters.EntityType != "" {
		query = query.Where("entity_type = ?", filters.EntityType)
	}
	if filters.EntityID != nil {
		query = query.Where("entity_id = ?", *filters.EntityID)
	}

	limit := filters.Limit
	if limit <= 0 || limit > maxAuditPage {
		limit = maxAuditPage
	}

	err := query.Limit(limit).Find(&logs).Error
	return logs, err
}

// CountByMeeting returns the number of audit records for a meeting
func (r *AuditRepository) CountByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.AuditLog{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error
	return count, err
}
