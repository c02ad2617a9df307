package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// RockRepository handles rock data access
type RockRepository struct {
	db *gorm.DB
}

// NewRockRepository creates a new rock repository
func NewRockRepository(db *gorm.DB) *RockRepository {
	return &RockRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *RockRepository) WithTx(tx *gorm.DB) *RockRepository {
	return &RockRepository{db: tx}
}

// Create inserts a new rock
func (r *RockRepository) Create(ctx context.Context, rock *entities.Rock) error {
	return r.db.WithContext(ctx).Create(rock).Error
}

// FindByID retrieves a rock with its milestones
func (r *RockRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Rock, error) {
	var rock entities.Rock
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Milestones").
		Where("id = ?", id).
		First(&rock).Error
	if err != nil {
		return nil, err
	}
	return &rock, nil
}

// ListByTeam retrieves rocks, optionally scoped to a team
func (r *RockRepository) ListByTeam(ctx context.Context, teamID *uuid.UUID) ([]*entities.Rock, error) {
	var rocks []*entities.Rock
	query := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Milestones").
		Order("created_at DESC")
	if teamID != nil {
		query = query.Where("team_id = ?", *teamID)
	}
	err := query.Find(&rocks).Error
	return rocks, err
}

// Save persists changes to an existing rock
func (r *RockRepository) Save(ctx context.Context, rock *entities.Rock) error {
	return r.db.WithContext(ctx).Save(rock).Error
}

// CreateMilestone inserts a new milestone
func (r *RockRepository) CreateMilestone(ctx context.Context, milestone *entities.RockMilestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

// FindMilestoneByID retrieves a milestone
func (r *RockRepository) FindMilestoneByID(ctx context.Context, id uuid.UUID) (*entities.RockMilestone, error) {
	var milestone entities.RockMilestone
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&milestone).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// SaveMilestone persists changes to an existing milestone
func (r *RockRepository) SaveMilestone(ctx context.Context, milestone *entities.RockMilestone) error {
	return r.db.WithContext(ctx).Save(milestone).Error
}

// Delete removes a rock and its milestones
func (r *RockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&entities.RockMilestone{}, "rock_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&entities.Rock{}, "id = ?", id).Error
}
