package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *TeamRepository) WithTx(tx *gorm.DB) *TeamRepository {
	return &TeamRepository{db: tx}
}

// Create inserts a new team
func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// FindByID retrieves a team with its members
func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var team entities.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByCompany retrieves teams, optionally scoped to a company
func (r *TeamRepository) ListByCompany(ctx context.Context, companyID *uuid.UUID) ([]*entities.Team, error) {
	var teams []*entities.Team
	query := r.db.WithContext(ctx).Preload("Company").Order("name ASC")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	err := query.Find(&teams).Error
	return teams, err
}

// AddMember inserts a team membership row
func (r *TeamRepository) AddMember(ctx context.Context, member *entities.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// RemoveMember deletes a team membership row
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&entities.TeamMember{}).Error
}
