package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// CompanyRepository handles company data access
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company
func (r *CompanyRepository) Create(ctx context.Context, company *entities.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// FindByID retrieves a company
func (r *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	var company entities.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves all companies with their teams
func (r *CompanyRepository) List(ctx context.Context) ([]*entities.Company, error) {
	var companies []*entities.Company
	err := r.db.WithContext(ctx).
		Preload("Teams").
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}
