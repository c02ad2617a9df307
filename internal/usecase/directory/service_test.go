package directory

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

func newDirectoryService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Company{},
		&entities.User{},
		&entities.Team{},
		&entities.TeamMember{},
		&entities.Rock{},
		&entities.RockMilestone{},
		&entities.AuditLog{},
	))

	svc := NewService(
		db,
		repository.NewCompanyRepository(db),
		repository.NewTeamRepository(db),
		repository.NewUserRepository(db),
		repository.NewRockRepository(db),
		audit.NewRecorder(),
		zap.NewNop(),
	)
	return svc, db
}

func adminActor(t *testing.T, db *gorm.DB) (entities.Actor, *entities.Company) {
	t.Helper()
	company := &entities.Company{Name: "Acme"}
	require.NoError(t, db.Create(company).Error)
	admin := &entities.User{Email: "admin@acme.test", Name: "Admin", Role: entities.RoleAdmin, CompanyID: company.ID}
	require.NoError(t, db.Create(admin).Error)
	return entities.Actor{ID: admin.ID, Email: admin.Email, Role: admin.Role}, company
}

func TestAddMember_DuplicateConflicts(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, company.ID, "Sales", actor)
	require.NoError(t, err)

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Email:     "bob@acme.test",
		Name:      "Bob",
		Role:      entities.RoleEditor,
		CompanyID: company.ID,
	}, actor)
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, team.ID, user.ID, actor)
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, team.ID, user.ID, actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindConflict, ucerrors.KindOf(err))
}

func TestAddMember_UnknownTeamOrUser(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, company.ID, "Sales", actor)
	require.NoError(t, err)

	_, err = svc.AddMember(ctx, team.ID, uuid.New(), actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))

	_, err = svc.AddMember(ctx, uuid.New(), actor.ID, actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

func TestCreateUser_DuplicateEmailConflicts(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)
	ctx := context.Background()

	input := CreateUserInput{Email: "dup@acme.test", Name: "Dup", Role: entities.RoleViewer, CompanyID: company.ID}
	_, err := svc.CreateUser(ctx, input, actor)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input, actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindConflict, ucerrors.KindOf(err))
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:     "x@acme.test",
		Name:      "X",
		Role:      entities.UserRole("OVERLORD"),
		CompanyID: company.ID,
	}, actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindValidation, ucerrors.KindOf(err))
}

func TestCreateTeam_UnknownCompany(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, _ := adminActor(t, db)

	_, err := svc.CreateTeam(context.Background(), uuid.New(), "Ghost", actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

func TestUpdateRock_TracksStatusWithAudit(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, company.ID, "Product", actor)
	require.NoError(t, err)

	rock, err := svc.CreateRock(ctx, CreateRockInput{
		TeamID:  team.ID,
		Title:   "Ship onboarding",
		OwnerID: actor.ID,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, entities.RockStatusOnTrack, rock.Status)

	off := entities.RockStatusOffTrack
	updated, err := svc.UpdateRock(ctx, rock.ID, UpdateRockInput{Status: &off}, actor)
	require.NoError(t, err)
	assert.Equal(t, entities.RockStatusOffTrack, updated.Status)

	var log entities.AuditLog
	require.NoError(t, db.First(&log, "action = ? AND entity_type = ? AND entity_id = ?",
		entities.AuditActionUpdate, "Rock", rock.ID).Error)
	assert.Contains(t, string(log.Before), string(entities.RockStatusOnTrack))
	assert.Contains(t, string(log.After), string(entities.RockStatusOffTrack))
}


func TestAddMilestone_CreatesAndToggles(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, company.ID, "Product", actor)
	require.NoError(t, err)

	rock, err := svc.CreateRock(ctx, CreateRockInput{
		TeamID:  team.ID,
		Title:   "Ship onboarding",
		OwnerID: actor.ID,
	}, actor)
	require.NoError(t, err)

	milestone, err := svc.AddMilestone(ctx, AddMilestoneInput{
		RockID: rock.ID,
		Title:  "Design review",
	}, actor)
	require.NoError(t, err)
	assert.False(t, milestone.Done)

	done, err := svc.SetMilestoneDone(ctx, milestone.ID, true, actor)
	require.NoError(t, err)
	assert.True(t, done.Done)

	loaded, err := svc.rockRepo.FindByID(ctx, rock.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Milestones, 1)
	assert.True(t, loaded.Milestones[0].Done)
}

func TestAddMilestone_UnknownRock(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, _ := adminActor(t, db)

	_, err := svc.AddMilestone(context.Background(), AddMilestoneInput{
		RockID: uuid.New(),
		Title:  "Design review",
	}, actor)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

func TestDeleteRock_RemovesMilestonesWithAudit(t *testing.T) {
	svc, db := newDirectoryService(t)
	actor, company := adminActor(t, db)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, company.ID, "Product", actor)
	require.NoError(t, err)
	rock, err := svc.CreateRock(ctx, CreateRockInput{
		TeamID:  team.ID,
		Title:   "Ship onboarding",
		OwnerID: actor.ID,
	}, actor)
	require.NoError(t, err)
	_, err = svc.AddMilestone(ctx, AddMilestoneInput{RockID: rock.ID, Title: "Design review"}, actor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRock(ctx, rock.ID, actor))

	var rockCount, milestoneCount int64
	require.NoError(t, db.Model(&entities.Rock{}).Count(&rockCount).Error)
	require.NoError(t, db.Model(&entities.RockMilestone{}).Count(&milestoneCount).Error)
	assert.Zero(t, rockCount)
	assert.Zero(t, milestoneCount)

	var log entities.AuditLog
	require.NoError(t, db.First(&log, "action = ? AND entity_type = ?",
		entities.AuditActionDelete, "Rock").Error)
	assert.Contains(t, string(log.Before), "Ship onboarding")
	assert.Empty(t, log.After)
}
