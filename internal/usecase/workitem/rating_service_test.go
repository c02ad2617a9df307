package workitem

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
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

func newTestDB(t *testing.T) *gorm.DB {
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
		&entities.Meeting{},
		&entities.Todo{},
		&entities.Issue{},
		&entities.Rating{},
		&entities.ScorecardMetric{},
		&entities.ScorecardEntry{},
		&entities.AuditLog{},
	))
	return db
}

type workitemFixture struct {
	db       *gorm.DB
	team     *entities.Team
	active   *entities.Meeting
	archived *entities.Meeting
	user     *entities.User
	actor    entities.Actor
}

func newWorkitemFixture(t *testing.T) *workitemFixture {
	t.Helper()
	db := newTestDB(t)

	company := &entities.Company{Name: "Acme"}
	require.NoError(t, db.Create(company).Error)
	user := &entities.User{Email: "alice@acme.test", Name: "Alice", Role: entities.RoleEditor, CompanyID: company.ID}
	require.NoError(t, db.Create(user).Error)
	team := &entities.Team{Name: "Leadership", CompanyID: company.ID}
	require.NoError(t, db.Create(team).Error)

	now := time.Now().UTC()
	archivedAt := now.AddDate(0, 0, -7)
	archived := &entities.Meeting{
		Title:       "old",
		TeamID:      team.ID,
		Status:      entities.MeetingStatusArchived,
		MeetingDate: now.AddDate(0, 0, -7),
		ArchivedAt:  &archivedAt,
	}
	require.NoError(t, db.Create(archived).Error)
	active := &entities.Meeting{
		Title:       "current",
		TeamID:      team.ID,
		Status:      entities.MeetingStatusActive,
		MeetingDate: now,
	}
	require.NoError(t, db.Create(active).Error)

	return &workitemFixture{
		db:       db,
		team:     team,
		active:   active,
		archived: archived,
		user:     user,
		actor:    entities.Actor{ID: user.ID, Email: user.Email, Role: user.Role},
	}
}

func newRatingService(f *workitemFixture) *RatingService {
	return NewRatingService(
		f.db,
		repository.NewRatingRepository(f.db),
		repository.NewMeetingRepository(f.db),
		audit.NewRecorder(),
		zap.NewNop(),
	)
}

func TestSubmit_CreatesThenUpdates(t *testing.T) {
	f := newWorkitemFixture(t)
	svc := newRatingService(f)
	ctx := context.Background()

	first, err := svc.Submit(ctx, f.active.ID, 7, f.actor)
	require.NoError(t, err)
	assert.Equal(t, 7, first.Score)

	second, err := svc.Submit(ctx, f.active.ID, 9, f.actor)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 9, second.Score)

	var count int64
	require.NoError(t, f.db.Model(&entities.Rating{}).Where("meeting_id = ?", f.active.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var auditCount int64
	require.NoError(t, f.db.Model(&entities.AuditLog{}).
		Where("action = ? AND entity_type = ?", entities.AuditActionUpdate, "Rating").
		Count(&auditCount).Error)
	assert.EqualValues(t, 2, auditCount)
}

func TestSubmit_ScoreBounds(t *testing.T) {
	f := newWorkitemFixture(t)
	svc := newRatingService(f)
	ctx := context.Background()

	for _, score := range []int{0, 11, -3} {
		_, err := svc.Submit(ctx, f.active.ID, score, f.actor)
		require.Error(t, err)
		assert.Equal(t, ucerrors.KindValidation, ucerrors.KindOf(err))
	}

	var count int64
	require.NoError(t, f.db.Model(&entities.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmit_ArchivedMeetingRejected(t *testing.T) {
	f := newWorkitemFixture(t)
	svc := newRatingService(f)

	_, err := svc.Submit(context.Background(), f.archived.ID, 5, f.actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindInvalidState, ucerrors.KindOf(err))
}

func TestValidScore(t *testing.T) {
	assert.True(t, entities.ValidScore(1))
	assert.True(t, entities.ValidScore(10))
	assert.False(t, entities.ValidScore(0))
	assert.False(t, entities.ValidScore(11))
}

func TestSubmit_ConvergesWhenRowAppearedConcurrently(t *testing.T) {
	f := newWorkitemFixture(t)
	svc := newRatingService(f)
	ctx := context.Background()

	// A concurrent submission landed between this caller's read and
	// write. The insert must converge on the existing row instead of
	// tripping the unique index.
	existing := &entities.Rating{
		Score:     4,
		UserID:    f.actor.ID,
		MeetingID: f.active.ID,
	}
	require.NoError(t, f.db.Create(existing).Error)

	rating, err := svc.Submit(ctx, f.active.ID, 9, f.actor)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, rating.ID)
	assert.Equal(t, 9, rating.Score)

	var count int64
	require.NoError(t, f.db.Model(&entities.Rating{}).Where("meeting_id = ?", f.active.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
