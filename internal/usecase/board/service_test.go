package board

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
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/cache"
)

type boardFixture struct {
	db      *gorm.DB
	svc     *Service
	store   cache.Store
	company *entities.Company
	team    *entities.Team
	user    *entities.User
}

func newBoardFixture(t *testing.T) *boardFixture {
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
		&entities.Rock{},
		&entities.RockMilestone{},
	))

	company := &entities.Company{Name: "Acme"}
	require.NoError(t, db.Create(company).Error)
	user := &entities.User{Email: "alice@acme.test", Name: "Alice", Role: entities.RoleAdmin, CompanyID: company.ID}
	require.NoError(t, db.Create(user).Error)
	team := &entities.Team{Name: "Leadership", CompanyID: company.ID}
	require.NoError(t, db.Create(team).Error)

	store := cache.NewMemoryStore()
	svc := NewService(
		repository.NewCompanyRepository(db),
		repository.NewTeamRepository(db),
		repository.NewMeetingRepository(db),
		repository.NewTodoRepository(db),
		repository.NewIssueRepository(db),
		repository.NewRatingRepository(db),
		repository.NewRockRepository(db),
		store,
		zap.NewNop(),
	)

	return &boardFixture{db: db, svc: svc, store: store, company: company, team: team, user: user}
}

func (f *boardFixture) addMeeting(t *testing.T, status entities.MeetingStatus, daysAgo int) *entities.Meeting {
	t.Helper()
	date := time.Now().UTC().AddDate(0, 0, -daysAgo)
	meeting := &entities.Meeting{
		Title:       "weekly",
		TeamID:      f.team.ID,
		Status:      status,
		MeetingDate: date,
	}
	if status == entities.MeetingStatusArchived {
		meeting.ArchivedAt = &date
	}
	require.NoError(t, f.db.Create(meeting).Error)
	return meeting
}

func TestDashboard_AggregatesTeamHealth(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	archived := f.addMeeting(t, entities.MeetingStatusArchived, 7)
	active := f.addMeeting(t, entities.MeetingStatusActive, 0)

	require.NoError(t, f.db.Create(&entities.Rating{Score: 8, UserID: f.user.ID, MeetingID: archived.ID}).Error)

	require.NoError(t, f.db.Create(&entities.Todo{Title: "done", Status: entities.TodoStatusDone, MeetingID: archived.ID}).Error)
	require.NoError(t, f.db.Create(&entities.Todo{Title: "open", Status: entities.TodoStatusNotStarted, MeetingID: active.ID, CarriedFromID: &archived.ID}).Error)

	require.NoError(t, f.db.Create(&entities.Issue{Title: "open", Status: entities.IssueStatusOpen, CreatorID: f.user.ID, MeetingID: active.ID}).Error)
	require.NoError(t, f.db.Create(&entities.Issue{Title: "solved", Status: entities.IssueStatusSolved, CreatorID: f.user.ID, MeetingID: archived.ID}).Error)

	require.NoError(t, f.db.Create(&entities.Rock{Title: "off", Status: entities.RockStatusOffTrack, OwnerID: f.user.ID, TeamID: f.team.ID}).Error)
	require.NoError(t, f.db.Create(&entities.Rock{Title: "on", Status: entities.RockStatusOnTrack, OwnerID: f.user.ID, TeamID: f.team.ID}).Error)

	dashboard, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, dashboard.Companies, 1)

	company := dashboard.Companies[0]
	assert.Equal(t, f.company.ID, company.CompanyID)
	require.Len(t, company.Teams, 1)

	team := company.Teams[0]
	assert.Equal(t, 2, team.MeetingCount)
	require.NotNil(t, team.AvgRating)
	assert.Equal(t, 8.0, *team.AvgRating)
	require.NotNil(t, team.TodoCompletionRate)
	assert.Equal(t, 0.5, *team.TodoCompletionRate)
	assert.Equal(t, 1, team.OpenIssueCount)
	assert.Equal(t, 1, team.OffTrackRocks)
	assert.Equal(t, 1, team.CarryForwardCount)

	// Company rollup mirrors the single team.
	require.NotNil(t, company.AvgRating)
	assert.Equal(t, 8.0, *company.AvgRating)
	assert.Equal(t, 1, company.OpenIssueCount)
	assert.Equal(t, 1, company.OffTrackRocks)
}

func TestDashboard_EmptyTeamHasNilAverages(t *testing.T) {
	f := newBoardFixture(t)

	dashboard, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, dashboard.Companies, 1)

	team := dashboard.Companies[0].Teams[0]
	assert.Nil(t, team.AvgRating)
	assert.Nil(t, team.TodoCompletionRate)
	assert.Equal(t, 0, team.MeetingCount)
}

func TestDashboard_ActiveMeetingRatingsExcluded(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	active := f.addMeeting(t, entities.MeetingStatusActive, 0)
	require.NoError(t, f.db.Create(&entities.Rating{Score: 10, UserID: f.user.ID, MeetingID: active.ID}).Error)

	dashboard, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Nil(t, dashboard.Companies[0].Teams[0].AvgRating)
}

func TestDashboard_ServesFromCache(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	first, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, first.Companies, 1)

	// New data is invisible until the cache is invalidated.
	require.NoError(t, f.db.Create(&entities.Company{Name: "Globex"}).Error)

	cached, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Companies, 1)

	f.svc.Invalidate(ctx)

	fresh, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Companies, 2)
}

func TestAverageAndRatio(t *testing.T) {
	assert.Nil(t, average(0, 0))
	require.NotNil(t, average(15, 2))
	assert.Equal(t, 7.5, *average(15, 2))

	assert.Nil(t, ratio(0, 0))
	require.NotNil(t, ratio(1, 4))
	assert.Equal(t, 0.25, *ratio(1, 4))
}
