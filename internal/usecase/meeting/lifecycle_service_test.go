package meeting

import (
	"context"
	"testing"
	"time"

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
		&entities.AuditLog{},
	))
	return db
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	team    *entities.Team
	meeting *entities.Meeting
	alice   *entities.User
	bob     *entities.User
	actor   entities.Actor
}

func newFixture(t *testing.T, exporter SnapshotExporter) *fixture {
	t.Helper()
	db := newTestDB(t)

	company := &entities.Company{Name: "Acme"}
	require.NoError(t, db.Create(company).Error)

	alice := &entities.User{Email: "alice@acme.test", Name: "Alice", Role: entities.RoleAdmin, CompanyID: company.ID}
	bob := &entities.User{Email: "bob@acme.test", Name: "Bob", Role: entities.RoleEditor, CompanyID: company.ID}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	team := &entities.Team{Name: "Leadership", CompanyID: company.ID}
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(&entities.TeamMember{TeamID: team.ID, UserID: alice.ID, Role: entities.RoleAdmin}).Error)
	require.NoError(t, db.Create(&entities.TeamMember{TeamID: team.ID, UserID: bob.ID, Role: entities.RoleEditor}).Error)

	meeting := &entities.Meeting{
		Title:       "Leadership - Weekly 2026-02-03",
		TeamID:      team.ID,
		Status:      entities.MeetingStatusActive,
		MeetingDate: time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(meeting).Error)

	svc := NewService(
		db,
		repository.NewMeetingRepository(db),
		repository.NewTeamRepository(db),
		repository.NewTodoRepository(db),
		repository.NewIssueRepository(db),
		repository.NewRatingRepository(db),
		audit.NewRecorder(),
		exporter,
		zap.NewNop(),
	)

	return &fixture{
		db:      db,
		svc:     svc,
		team:    team,
		meeting: meeting,
		alice:   alice,
		bob:     bob,
		actor:   entities.Actor{ID: alice.ID, Email: alice.Email, Role: alice.Role},
	}
}

func (f *fixture) rate(t *testing.T, user *entities.User, score int) {
	t.Helper()
	require.NoError(t, f.db.Create(&entities.Rating{
		Score:     score,
		UserID:    user.ID,
		MeetingID: f.meeting.ID,
	}).Error)
}

func (f *fixture) auditCount(t *testing.T, action entities.AuditAction) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&entities.AuditLog{}).Where("action = ?", action).Count(&n).Error)
	return n
}

func TestCreate_SecondActiveMeetingConflicts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateInput{
		TeamID:      f.team.ID,
		Title:       "Another meeting",
		MeetingDate: time.Now(),
	}, f.actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindConflict, ucerrors.KindOf(err))
}

func TestCreate_UnknownTeam(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Create(context.Background(), CreateInput{
		TeamID:      uuid.New(),
		Title:       "Orphan",
		MeetingDate: time.Now(),
	}, f.actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

func TestCreate_RecordsAudit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	// Free the active slot first.
	require.NoError(t, f.db.Model(f.meeting).Update("status", entities.MeetingStatusArchived).Error)

	created, err := f.svc.Create(ctx, CreateInput{
		TeamID:      f.team.ID,
		Title:       "Fresh meeting",
		MeetingDate: time.Now(),
	}, f.actor)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingStatusActive, created.Status)
	assert.EqualValues(t, 1, f.auditCount(t, entities.AuditActionCreate))
}

func TestCreate_DefaultsTitleAndDate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.db.Model(f.meeting).Update("status", entities.MeetingStatusArchived).Error)

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return at }

	created, err := f.svc.Create(ctx, CreateInput{TeamID: f.team.ID}, f.actor)
	require.NoError(t, err)
	assert.Equal(t, at, created.MeetingDate)
	assert.Equal(t, entities.SuccessorTitle(f.team.Name, at), created.Title)
}

func TestArchive_MissingRatingsBlockWithoutSideEffects(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.rate(t, f.alice, 8)

	_, err := f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindValidation, ucerrors.KindOf(err))
	assert.Contains(t, err.Error(), "1 team member(s)")

	var reloaded entities.Meeting
	require.NoError(t, f.db.First(&reloaded, "id = ?", f.meeting.ID).Error)
	assert.Equal(t, entities.MeetingStatusActive, reloaded.Status)
	assert.Nil(t, reloaded.ArchivedAt)

	var meetings int64
	require.NoError(t, f.db.Model(&entities.Meeting{}).Count(&meetings).Error)
	assert.EqualValues(t, 1, meetings)
	assert.EqualValues(t, 0, f.auditCount(t, entities.AuditActionArchive))
}

func TestArchive_CarriesUnfinishedWork(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.rate(t, f.alice, 8)
	f.rate(t, f.bob, 6)

	archivedAt := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return archivedAt }

	overdue := f.meeting.MeetingDate.AddDate(0, 0, -1)
	future := archivedAt.AddDate(0, 0, 3)

	done := &entities.Todo{Title: "shipped", Status: entities.TodoStatusDone, MeetingID: f.meeting.ID}
	flagged := &entities.Todo{Title: "flagged", Status: entities.TodoStatusCarryForward, MeetingID: f.meeting.ID}
	late := &entities.Todo{Title: "late", Status: entities.TodoStatusInProgress, DueDate: &overdue, MeetingID: f.meeting.ID}
	pending := &entities.Todo{Title: "pending", Status: entities.TodoStatusNotStarted, DueDate: &future, MeetingID: f.meeting.ID}
	for _, todo := range []*entities.Todo{done, flagged, late, pending} {
		require.NoError(t, f.db.Create(todo).Error)
	}

	solved := &entities.Issue{Title: "solved", Status: entities.IssueStatusSolved, CreatorID: f.alice.ID, MeetingID: f.meeting.ID}
	open := &entities.Issue{Title: "open", Status: entities.IssueStatusOpen, Priority: entities.IssuePriorityHigh, CreatorID: f.alice.ID, MeetingID: f.meeting.ID}
	require.NoError(t, f.db.Create(solved).Error)
	require.NoError(t, f.db.Create(open).Error)

	result, err := f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.NoError(t, err)

	assert.Equal(t, entities.MeetingStatusArchived, result.ArchivedMeeting.Status)
	require.NotNil(t, result.ArchivedMeeting.ArchivedAt)
	assert.Equal(t, archivedAt, result.ArchivedMeeting.ArchivedAt.UTC())

	next := result.NextMeeting
	require.NotNil(t, next)
	assert.Equal(t, entities.MeetingStatusActive, next.Status)
	assert.Equal(t, f.meeting.MeetingDate.AddDate(0, 0, 7), next.MeetingDate.UTC())
	assert.Equal(t, entities.SuccessorTitle(f.team.Name, next.MeetingDate), next.Title)
	require.NotNil(t, next.PreviousMeetingID)
	assert.Equal(t, f.meeting.ID, *next.PreviousMeetingID)

	assert.Equal(t, 2, result.CarriedTodos)
	assert.Equal(t, 1, result.CarriedIssues)

	var carriedTodos []*entities.Todo
	require.NoError(t, f.db.Where("meeting_id = ?", next.ID).Find(&carriedTodos).Error)
	require.Len(t, carriedTodos, 2)
	for _, todo := range carriedTodos {
		assert.Equal(t, entities.TodoStatusNotStarted, todo.Status)
		require.NotNil(t, todo.CarriedFromID)
	}

	var carriedLate entities.Todo
	require.NoError(t, f.db.First(&carriedLate, "meeting_id = ? AND carried_from_id = ?", next.ID, late.ID).Error)
	require.NotNil(t, carriedLate.DueDate)
	assert.Equal(t, overdue.AddDate(0, 0, 7), carriedLate.DueDate.UTC())

	var carriedIssue entities.Issue
	require.NoError(t, f.db.First(&carriedIssue, "meeting_id = ?", next.ID).Error)
	assert.Equal(t, entities.IssueStatusOpen, carriedIssue.Status)
	assert.Equal(t, entities.IssuePriorityHigh, carriedIssue.Priority)
	require.NotNil(t, carriedIssue.CarriedFromID)
	assert.Equal(t, open.ID, *carriedIssue.CarriedFromID)

	// Originals are untouched.
	var originalFlagged entities.Todo
	require.NoError(t, f.db.First(&originalFlagged, "id = ?", flagged.ID).Error)
	assert.Equal(t, entities.TodoStatusCarryForward, originalFlagged.Status)
	assert.Equal(t, f.meeting.ID, originalFlagged.MeetingID)

	assert.EqualValues(t, 1, f.auditCount(t, entities.AuditActionArchive))
}

func TestArchive_AlreadyArchived(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.rate(t, f.alice, 8)
	f.rate(t, f.bob, 6)

	_, err := f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.NoError(t, err)

	_, err = f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindInvalidState, ucerrors.KindOf(err))
}

func TestArchive_UnknownMeeting(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Archive(context.Background(), uuid.New(), f.actor)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

type captureExporter struct {
	snapshot *ArchiveSnapshot
	err      error
}

func (c *captureExporter) ExportMeetingSnapshot(ctx context.Context, snapshot ArchiveSnapshot) error {
	c.snapshot = &snapshot
	return c.err
}

func TestArchive_ExportsSnapshot(t *testing.T) {
	exporter := &captureExporter{}
	f := newFixture(t, exporter)
	ctx := context.Background()
	f.rate(t, f.alice, 9)
	f.rate(t, f.bob, 7)

	require.NoError(t, f.db.Create(&entities.Todo{Title: "release notes", Status: entities.TodoStatusDone, MeetingID: f.meeting.ID}).Error)

	_, err := f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.NoError(t, err)

	require.NotNil(t, exporter.snapshot)
	assert.Equal(t, f.meeting.ID, exporter.snapshot.Meeting.ID)
	assert.Len(t, exporter.snapshot.Todos, 1)
	assert.Len(t, exporter.snapshot.Ratings, 2)
}

func TestArchive_ExporterFailureDoesNotFailArchive(t *testing.T) {
	exporter := &captureExporter{err: context.DeadlineExceeded}
	f := newFixture(t, exporter)
	ctx := context.Background()
	f.rate(t, f.alice, 9)
	f.rate(t, f.bob, 7)

	result, err := f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.NoError(t, err)
	assert.NotNil(t, result.NextMeeting)

	var reloaded entities.Meeting
	require.NoError(t, f.db.First(&reloaded, "id = ?", f.meeting.ID).Error)
	assert.Equal(t, entities.MeetingStatusArchived, reloaded.Status)
}

func TestGet_ResolvesSuccessor(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.rate(t, f.alice, 8)
	f.rate(t, f.bob, 6)

	result, err := f.svc.Archive(ctx, f.meeting.ID, f.actor)
	require.NoError(t, err)

	got, next, err := f.svc.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, f.meeting.ID, got.ID)
	require.NotNil(t, next)
	assert.Equal(t, result.NextMeeting.ID, next.ID)

	// The successor itself has no forward link yet.
	_, tail, err := f.svc.Get(ctx, next.ID)
	require.NoError(t, err)
	assert.Nil(t, tail)
}

func TestCountMissingRaters(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	ratings := []*entities.Rating{{UserID: a}, {UserID: b}}

	assert.Equal(t, 0, countMissingRaters([]uuid.UUID{a, b}, ratings))
	assert.Equal(t, 1, countMissingRaters([]uuid.UUID{a, b, c}, ratings))
	assert.Equal(t, 0, countMissingRaters(nil, ratings))
}

func TestList_IncludesWorkItemCounts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&entities.Todo{
		Title:     "Prepare board deck",
		Status:    entities.TodoStatusNotStarted,
		MeetingID: f.meeting.ID,
		OwnerID:   &f.alice.ID,
	}).Error)
	require.NoError(t, f.db.Create(&entities.Todo{
		Title:     "Send recap",
		Status:    entities.TodoStatusDone,
		MeetingID: f.meeting.ID,
		OwnerID:   &f.bob.ID,
	}).Error)
	require.NoError(t, f.db.Create(&entities.Issue{
		Title:     "Churn spike",
		Status:    entities.IssueStatusOpen,
		Priority:  entities.IssuePriorityHigh,
		MeetingID: f.meeting.ID,
		CreatorID: f.alice.ID,
	}).Error)
	f.rate(t, f.alice, 7)

	summaries, err := f.svc.List(ctx, repository.MeetingFilters{TeamID: &f.team.ID})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(2), summaries[0].TodoCount)
	assert.Equal(t, int64(1), summaries[0].IssueCount)
	assert.Equal(t, int64(1), summaries[0].RatingCount)
}
