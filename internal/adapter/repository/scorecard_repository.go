package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// ScorecardRepository handles scorecard metric and entry data access
type ScorecardRepository struct {
	db *gorm.DB
}

// NewScorecardRepository creates a new scorecard repository
func NewScorecardRepository(db *gorm.DB) *ScorecardRepository {
	return &ScorecardRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ScorecardRepository) WithTx(tx *gorm.DB) *ScorecardRepository {
	return &ScorecardRepository{db: tx}
}

// CreateMetric inserts a new metric
func (r *ScorecardRepository) CreateMetric(ctx context.Context, metric *entities.ScorecardMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

// FindMetricByID retrieves a metric
func (r *ScorecardRepository) FindMetricByID(ctx context.Context, id uuid.UUID) (*entities.ScorecardMetric, error) {
	var metric entities.ScorecardMetric
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

// ListMetricsByTeam retrieves a team's metrics
func (r *ScorecardRepository) ListMetricsByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.ScorecardMetric, error) {
	var metrics []*entities.ScorecardMetric
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&metrics).Error
	return metrics, err
}

// SaveMetric persists changes to an existing metric
func (r *ScorecardRepository) SaveMetric(ctx context.Context, metric *entities.ScorecardMetric) error {
	return r.db.WithContext(ctx).Save(metric).Error
}

// CreateEntry inserts a new entry
func (r *ScorecardRepository) CreateEntry(ctx context.Context, entry *entities.ScorecardEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// SaveEntry persists changes to an existing entry
func (r *ScorecardRepository) SaveEntry(ctx context.Context, entry *entities.ScorecardEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// FindEntryByMetricAndMeeting retrieves the unique entry for a
// (metric, meeting) pair
func (r *ScorecardRepository) FindEntryByMetricAndMeeting(ctx context.Context, metricID, meetingID uuid.UUID) (*entities.ScorecardEntry, error) {
	var entry entities.ScorecardEntry
	err := r.db.WithContext(ctx).
		Where("metric_id = ? AND meeting_id = ?", metricID, meetingID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntriesByMeeting retrieves all entries of a meeting with their metrics
func (r *ScorecardRepository) ListEntriesByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ScorecardEntry, error) {
	var entries []*entities.ScorecardEntry
	err := r.db.WithContext(ctx).
		Preload("Metric").
		Where("meeting_id = ?", meetingID).
		Find(&entries).Error
	return entries, err
}
