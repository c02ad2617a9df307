package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// Service owns the directory: companies, users, teams with their
// rosters, and rocks. These are the slow-changing records the meeting
// lifecycle hangs off.
type Service struct {
	db          *gorm.DB
	companyRepo *repository.CompanyRepository
	teamRepo    *repository.TeamRepository
	userRepo    *repository.UserRepository
	rockRepo    *repository.RockRepository
	recorder    *audit.Recorder
	logger      *zap.Logger
}

// NewService creates a directory service
func NewService(
	db *gorm.DB,
	companyRepo *repository.CompanyRepository,
	teamRepo *repository.TeamRepository,
	userRepo *repository.UserRepository,
	rockRepo *repository.RockRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:          db,
		companyRepo: companyRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		rockRepo:    rockRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateCompany adds a company
func (s *Service) CreateCompany(ctx context.Context, name string, actor entities.Actor) (*entities.Company, error) {
	company := &entities.Company{Name: name}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewCompanyRepository(tx).Create(ctx, company); err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "Company",
			EntityID:   company.ID,
			After:      company,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies returns all companies
func (s *Service) ListCompanies(ctx context.Context) ([]*entities.Company, error) {
	return s.companyRepo.List(ctx)
}

// CreateTeam adds a team under a company
func (s *Service) CreateTeam(ctx context.Context, companyID uuid.UUID, name string, actor entities.Actor) (*entities.Team, error) {
	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("company")
		}
		return nil, ucerrors.Internal(err)
	}

	team := &entities.Team{Name: name, CompanyID: companyID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.teamRepo.WithTx(tx).Create(ctx, team); err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "Team",
			EntityID:   team.ID,
			After:      team,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam returns a team with its roster
func (s *Service) GetTeam(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("team")
		}
		return nil, ucerrors.Internal(err)
	}
	return team, nil
}

// ListTeams returns teams, optionally scoped to a company
func (s *Service) ListTeams(ctx context.Context, companyID *uuid.UUID) ([]*entities.Team, error) {
	return s.teamRepo.ListByCompany(ctx, companyID)
}

// AddMember puts a user on a team roster
func (s *Service) AddMember(ctx context.Context, teamID, userID uuid.UUID, actor entities.Actor) (*entities.TeamMember, error) {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("team")
		}
		return nil, ucerrors.Internal(err)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("user")
		}
		return nil, ucerrors.Internal(err)
	}

	member := &entities.TeamMember{TeamID: teamID, UserID: userID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.teamRepo.WithTx(tx).AddMember(ctx, member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ucerrors.Conflict("user is already a team member")
			}
			return fmt.Errorf("failed to add member: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "TeamMember",
			EntityID:   member.ID,
			After:      member,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember takes a user off a team roster
func (s *Service) RemoveMember(ctx context.Context, teamID, userID uuid.UUID, actor entities.Actor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.teamRepo.WithTx(tx).RemoveMember(ctx, teamID, userID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionDelete,
			EntityType: "TeamMember",
			EntityID:   teamID,
			Before:     map[string]interface{}{"team_id": teamID, "user_id": userID},
			ActorID:    actor.ID,
		})
	})
}

// CreateUserInput holds the fields for a new user
type CreateUserInput struct {
	Email     string
	Name      string
	Role      entities.UserRole
	CompanyID uuid.UUID
}

// CreateUser adds a user
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput, actor entities.Actor) (*entities.User, error) {
	if !input.Role.IsValid() {
		return nil, ucerrors.Validationf("invalid role %q", input.Role)
	}
	if _, err := s.companyRepo.FindByID(ctx, input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("company")
		}
		return nil, ucerrors.Internal(err)
	}

	user := &entities.User{
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		CompanyID: input.CompanyID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ucerrors.Conflict("a user with this email already exists")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "User",
			EntityID:   user.ID,
			After:      user,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns users, optionally scoped to a company
func (s *Service) ListUsers(ctx context.Context, companyID *uuid.UUID) ([]*entities.User, error) {
	return s.userRepo.ListByCompany(ctx, companyID)
}

// CreateRockInput holds the fields for a new rock
type CreateRockInput struct {
	TeamID  uuid.UUID
	Title   string
	OwnerID uuid.UUID
	DueDate *time.Time
}

// CreateRock adds a quarterly rock to a team
func (s *Service) CreateRock(ctx context.Context, input CreateRockInput, actor entities.Actor) (*entities.Rock, error) {
	if _, err := s.teamRepo.FindByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("team")
		}
		return nil, ucerrors.Internal(err)
	}

	rock := &entities.Rock{
		TeamID:  input.TeamID,
		Title:   input.Title,
		Status:  entities.RockStatusOnTrack,
		OwnerID: input.OwnerID,
		DueDate: input.DueDate,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.rockRepo.WithTx(tx).Create(ctx, rock); err != nil {
			return fmt.Errorf("failed to create rock: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "Rock",
			EntityID:   rock.ID,
			After:      rock,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return rock, nil
}

// UpdateRockInput holds the mutable rock fields
type UpdateRockInput struct {
	Title   *string
	Status  *entities.RockStatus
	OwnerID *uuid.UUID
	DueDate *time.Time
}

// UpdateRock mutates a rock
func (s *Service) UpdateRock(ctx context.Context, id uuid.UUID, input UpdateRockInput, actor entities.Actor) (*entities.Rock, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, ucerrors.Validationf("invalid rock status %q", *input.Status)
	}

	var rock *entities.Rock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rocks := s.rockRepo.WithTx(tx)

		found, err := rocks.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("rock")
			}
			return fmt.Errorf("failed to load rock: %w", err)
		}
		before := *found

		if input.Title != nil {
			found.Title = *input.Title
		}
		if input.Status != nil {
			found.Status = *input.Status
		}
		if input.OwnerID != nil {
			found.OwnerID = *input.OwnerID
		}
		if input.DueDate != nil {
			found.DueDate = input.DueDate
		}

		if err := rocks.Save(ctx, found); err != nil {
			return fmt.Errorf("failed to save rock: %w", err)
		}

		rock = found
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "Rock",
			EntityID:   found.ID,
			Before:     before,
			After:      found,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return rock, nil
}

// DeleteRock removes a rock and its milestones
func (s *Service) DeleteRock(ctx context.Context, id uuid.UUID, actor entities.Actor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rocks := s.rockRepo.WithTx(tx)

		found, err := rocks.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("rock")
			}
			return fmt.Errorf("failed to load rock: %w", err)
		}

		if err := rocks.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete rock: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionDelete,
			EntityType: "Rock",
			EntityID:   id,
			Before:     found,
			ActorID:    actor.ID,
		})
	})
}

// AddMilestoneInput holds the fields for a new rock milestone
type AddMilestoneInput struct {
	RockID  uuid.UUID
	Title   string
	DueDate *time.Time
}

// AddMilestone attaches a checkpoint to a rock
func (s *Service) AddMilestone(ctx context.Context, input AddMilestoneInput, actor entities.Actor) (*entities.RockMilestone, error) {
	milestone := &entities.RockMilestone{
		RockID:  input.RockID,
		Title:   input.Title,
		DueDate: input.DueDate,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rocks := s.rockRepo.WithTx(tx)

		if _, err := rocks.FindByID(ctx, input.RockID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("rock")
			}
			return fmt.Errorf("failed to load rock: %w", err)
		}
		if err := rocks.CreateMilestone(ctx, milestone); err != nil {
			return fmt.Errorf("failed to create milestone: %w", err)
		}
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "RockMilestone",
			EntityID:   milestone.ID,
			After:      milestone,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return milestone, nil
}

// SetMilestoneDone marks a milestone done or reopens it
func (s *Service) SetMilestoneDone(ctx context.Context, id uuid.UUID, done bool, actor entities.Actor) (*entities.RockMilestone, error) {
	var milestone *entities.RockMilestone
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rocks := s.rockRepo.WithTx(tx)

		found, err := rocks.FindMilestoneByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("milestone")
			}
			return fmt.Errorf("failed to load milestone: %w", err)
		}
		before := *found

		found.Done = done
		if err := rocks.SaveMilestone(ctx, found); err != nil {
			return fmt.Errorf("failed to save milestone: %w", err)
		}

		milestone = found
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "RockMilestone",
			EntityID:   found.ID,
			Before:     before,
			After:      found,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return milestone, nil
}

// ListRocks returns rocks, optionally scoped to a team
func (s *Service) ListRocks(ctx context.Context, teamID *uuid.UUID) ([]*entities.Rock, error) {
	return s.rockRepo.ListByTeam(ctx, teamID)
}
