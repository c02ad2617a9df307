package draft

import (
	"context"
	"encoding/json"
	"errors"
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

type fakeSummarizer struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type draftFixture struct {
	db      *gorm.DB
	svc     *Service
	meeting *entities.Meeting
	actor   entities.Actor
}

func newDraftFixture(t *testing.T, summarizer Summarizer) *draftFixture {
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
		&entities.Rock{},
		&entities.RockMilestone{},
		&entities.AiDraft{},
		&entities.AuditLog{},
	))

	company := &entities.Company{Name: "Acme"}
	require.NoError(t, db.Create(company).Error)
	user := &entities.User{Email: "alice@acme.test", Name: "Alice", Role: entities.RoleAdmin, CompanyID: company.ID}
	require.NoError(t, db.Create(user).Error)
	team := &entities.Team{Name: "Leadership", CompanyID: company.ID}
	require.NoError(t, db.Create(team).Error)
	meeting := &entities.Meeting{
		Title:       "Leadership - Weekly 2026-02-03",
		TeamID:      team.ID,
		Status:      entities.MeetingStatusActive,
		MeetingDate: time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(meeting).Error)
	require.NoError(t, db.Create(&entities.Todo{
		Title: "Send the deck", Status: entities.TodoStatusInProgress, MeetingID: meeting.ID,
	}).Error)

	svc := NewService(
		db,
		repository.NewDraftRepository(db),
		repository.NewMeetingRepository(db),
		repository.NewTodoRepository(db),
		repository.NewIssueRepository(db),
		repository.NewRatingRepository(db),
		repository.NewScorecardRepository(db),
		repository.NewRockRepository(db),
		summarizer,
		audit.NewRecorder(),
		zap.NewNop(),
	)

	return &draftFixture{
		db:      db,
		svc:     svc,
		meeting: meeting,
		actor:   entities.Actor{ID: user.ID, Email: user.Email, Role: user.Role},
	}
}

func TestGenerateMeetingSummary_StoresPendingDraft(t *testing.T) {
	summarizer := &fakeSummarizer{
		reply: `{"summaryText":"Short week, solid progress.","proposals":[],"warnings":[],"confidence":0.9}`,
	}
	f := newDraftFixture(t, summarizer)

	draft, err := f.svc.GenerateMeetingSummary(context.Background(), f.actor, f.meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DraftStatusPending, draft.Status)
	assert.Equal(t, "Short week, solid progress.", draft.SummaryText)
	assert.Equal(t, 0.9, draft.Confidence)
	assert.Equal(t, 1, summarizer.calls)

	// Generation must not audit; only disposition does.
	var auditCount int64
	require.NoError(t, f.db.Model(&entities.AuditLog{}).Count(&auditCount).Error)
	assert.EqualValues(t, 0, auditCount)
}

func TestGenerateMeetingSummary_DegradesOnFailure(t *testing.T) {
	summarizer := &fakeSummarizer{err: errors.New("upstream 503")}
	f := newDraftFixture(t, summarizer)

	draft, err := f.svc.GenerateMeetingSummary(context.Background(), f.actor, f.meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DraftStatusPending, draft.Status)
	assert.Zero(t, draft.Confidence)

	var warnings []string
	require.NoError(t, json.Unmarshal(draft.Warnings, &warnings))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "summarizer unavailable")

	// The call is retried before degrading.
	assert.Greater(t, summarizer.calls, 1)
}

func TestGenerateMeetingSummary_DegradesOnMalformedReply(t *testing.T) {
	summarizer := &fakeSummarizer{reply: "I could not produce JSON today."}
	f := newDraftFixture(t, summarizer)

	draft, err := f.svc.GenerateMeetingSummary(context.Background(), f.actor, f.meeting.ID)
	require.NoError(t, err)

	var warnings []string
	require.NoError(t, json.Unmarshal(draft.Warnings, &warnings))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "malformed summarizer output")
}

func TestGenerateMeetingSummary_UnknownMeeting(t *testing.T) {
	f := newDraftFixture(t, &fakeSummarizer{reply: `{"summaryText":"x"}`})

	_, err := f.svc.GenerateMeetingSummary(context.Background(), f.actor, uuid.New())
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

func TestDispose_TransitionsExactlyOnce(t *testing.T) {
	f := newDraftFixture(t, &fakeSummarizer{reply: `{"summaryText":"ok","confidence":0.7}`})
	ctx := context.Background()

	draft, err := f.svc.GenerateMeetingSummary(ctx, f.actor, f.meeting.ID)
	require.NoError(t, err)

	applied, err := f.svc.Dispose(ctx, f.actor, draft.ID, true)
	require.NoError(t, err)
	assert.Equal(t, entities.DraftStatusApplied, applied.Status)

	var log entities.AuditLog
	require.NoError(t, f.db.First(&log, "action = ? AND entity_id = ?", entities.AuditActionAIApply, draft.ID).Error)
	assert.Contains(t, string(log.After), string(entities.DraftStatusApplied))

	// Second disposition fails regardless of requested status.
	_, err = f.svc.Dispose(ctx, f.actor, draft.ID, false)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindInvalidState, ucerrors.KindOf(err))

	var stored entities.AiDraft
	require.NoError(t, f.db.First(&stored, "id = ?", draft.ID).Error)
	assert.Equal(t, entities.DraftStatusApplied, stored.Status)
}

func TestDispose_Reject(t *testing.T) {
	f := newDraftFixture(t, &fakeSummarizer{reply: `{"summaryText":"meh","confidence":0.2}`})
	ctx := context.Background()

	draft, err := f.svc.GenerateMeetingSummary(ctx, f.actor, f.meeting.ID)
	require.NoError(t, err)

	rejected, err := f.svc.Dispose(ctx, f.actor, draft.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entities.DraftStatusRejected, rejected.Status)
}

func TestDispose_UnknownDraft(t *testing.T) {
	f := newDraftFixture(t, &fakeSummarizer{reply: `{"summaryText":"x"}`})

	_, err := f.svc.Dispose(context.Background(), f.actor, uuid.New(), true)
	require.Error(t, err)
	assert.Equal(t, ucerrors.KindNotFound, ucerrors.KindOf(err))
}

func TestListByMeeting_AllowsMultipleDrafts(t *testing.T) {
	f := newDraftFixture(t, &fakeSummarizer{reply: `{"summaryText":"run","confidence":0.5}`})
	ctx := context.Background()

	_, err := f.svc.GenerateMeetingSummary(ctx, f.actor, f.meeting.ID)
	require.NoError(t, err)
	_, err = f.svc.GenerateMeetingSummary(ctx, f.actor, f.meeting.ID)
	require.NoError(t, err)

	drafts, err := f.svc.ListByMeeting(ctx, f.meeting.ID)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}

func TestGenerateBoardSummary(t *testing.T) {
	summarizer := &fakeSummarizer{
		reply: `{"summaryText":"Two companies healthy, one slipping.","confidence":0.8}`,
	}
	f := newDraftFixture(t, summarizer)

	avg := 7.4
	output := f.svc.GenerateBoardSummary(context.Background(), []BoardCompanyData{
		{Name: "Acme", AvgRating: &avg, OpenIssueCount: 3},
	})
	require.NotNil(t, output)
	assert.Equal(t, "Two companies healthy, one slipping.", output.SummaryText)
	assert.Contains(t, summarizer.prompts[0], "Acme")

	// Board summaries are read-only and never persist a draft.
	var drafts int64
	require.NoError(t, f.db.Model(&entities.AiDraft{}).Count(&drafts).Error)
	assert.Zero(t, drafts)
}

func TestGenerateBoardSummary_DegradesOnFailure(t *testing.T) {
	summarizer := &fakeSummarizer{err: errors.New("upstream down")}
	f := newDraftFixture(t, summarizer)

	output := f.svc.GenerateBoardSummary(context.Background(), nil)
	require.NotNil(t, output)
	require.NotEmpty(t, output.Warnings)
	assert.Contains(t, output.Warnings[0], "summarizer unavailable")
	assert.Zero(t, output.Confidence)
}
