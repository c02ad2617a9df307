package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// Summarizer produces a raw model completion for a prompt
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

const summarizeMaxRetries = 2

// Service generates review drafts from meeting data and manages their
// disposition lifecycle
type Service struct {
	db            *gorm.DB
	draftRepo     *repository.DraftRepository
	meetingRepo   *repository.MeetingRepository
	todoRepo      *repository.TodoRepository
	issueRepo     *repository.IssueRepository
	ratingRepo    *repository.RatingRepository
	scorecardRepo *repository.ScorecardRepository
	rockRepo      *repository.RockRepository
	summarizer    Summarizer
	recorder      *audit.Recorder
	logger        *zap.Logger
}

// NewService creates a draft service
func NewService(
	db *gorm.DB,
	draftRepo *repository.DraftRepository,
	meetingRepo *repository.MeetingRepository,
	todoRepo *repository.TodoRepository,
	issueRepo *repository.IssueRepository,
	ratingRepo *repository.RatingRepository,
	scorecardRepo *repository.ScorecardRepository,
	rockRepo *repository.RockRepository,
	summarizer Summarizer,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:            db,
		draftRepo:     draftRepo,
		meetingRepo:   meetingRepo,
		todoRepo:      todoRepo,
		issueRepo:     issueRepo,
		ratingRepo:    ratingRepo,
		scorecardRepo: scorecardRepo,
		rockRepo:      rockRepo,
		summarizer:    summarizer,
		recorder:      recorder,
		logger:        logger,
	}
}

// GenerateMeetingSummary runs the summarizer over a meeting's current
// data and stores the result as a PENDING draft. Summarizer failure or
// malformed output never fails the call: the draft degrades to a
// low-confidence fallback with the failure reason recorded as a warning.
func (s *Service) GenerateMeetingSummary(ctx context.Context, actor entities.Actor, meetingID uuid.UUID) (*entities.AiDraft, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("meeting")
		}
		return nil, ucerrors.Internal(err)
	}

	todos, err := s.todoRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}
	issues, err := s.issueRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}
	ratings, err := s.ratingRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}
	entries, err := s.scorecardRepo.ListEntriesByMeeting(ctx, meetingID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}
	rocks, err := s.rockRepo.ListByTeam(ctx, &meeting.TeamID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}

	prompt := buildMeetingPrompt(meetingPromptData{
		Meeting: meeting,
		Todos:   todos,
		Issues:  issues,
		Rocks:   rocks,
		Entries: entries,
		Ratings: ratings,
	})

	output := s.summarize(ctx, prompt)
	return s.storeDraft(ctx, meetingID, output)
}

// GenerateBoardSummary runs the summarizer over board-level company
// metrics. The output is returned directly; board summaries are
// read-only and never persist a draft.
func (s *Service) GenerateBoardSummary(ctx context.Context, companies []BoardCompanyData) *Output {
	return s.summarize(ctx, buildBoardPrompt(companies))
}

// summarize calls the model with bounded retries and degrades on failure
func (s *Service) summarize(ctx context.Context, prompt string) *Output {
	var raw string
	operation := func() error {
		var err error
		raw, err = s.summarizer.Summarize(ctx, prompt)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), summarizeMaxRetries), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		s.logger.Warn("summarizer unavailable, storing degraded draft", zap.Error(err))
		return DegradedOutput(fmt.Sprintf("summarizer unavailable: %v", err))
	}

	output, err := ParseOutput(raw)
	if err != nil {
		s.logger.Warn("summarizer returned malformed output, storing degraded draft", zap.Error(err))
		return DegradedOutput(fmt.Sprintf("malformed summarizer output: %v", err))
	}
	return output
}

func (s *Service) storeDraft(ctx context.Context, meetingID uuid.UUID, output *Output) (*entities.AiDraft, error) {
	proposals, err := json.Marshal(output.Proposals)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}
	warnings, err := json.Marshal(output.Warnings)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}

	draft := &entities.AiDraft{
		MeetingID:   meetingID,
		SummaryText: output.SummaryText,
		Proposals:   datatypes.JSON(proposals),
		Warnings:    datatypes.JSON(warnings),
		Confidence:  output.Confidence,
		Status:      entities.DraftStatusPending,
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, ucerrors.Internal(err)
	}
	return draft, nil
}

// Dispose transitions a PENDING draft to APPLIED or REJECTED. The
// transition happens at most once: a second disposition attempt fails
// with an invalid-state error regardless of the requested status.
func (s *Service) Dispose(ctx context.Context, actor entities.Actor, draftID uuid.UUID, applied bool) (*entities.AiDraft, error) {
	status := entities.DraftStatusRejected
	if applied {
		status = entities.DraftStatusApplied
	}

	var disposed *entities.AiDraft
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		draftRepo := s.draftRepo.WithTx(tx)

		draft, err := draftRepo.FindByID(ctx, draftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("draft")
			}
			return ucerrors.Internal(err)
		}

		affected, err := draftRepo.MarkDisposed(ctx, draftID, status)
		if err != nil {
			return ucerrors.Internal(err)
		}
		if affected == 0 {
			return ucerrors.InvalidState("draft has already been processed")
		}

		if err := s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionAIApply,
			EntityType: "AiDraft",
			EntityID:   draft.ID,
			Before:     map[string]interface{}{"status": entities.DraftStatusPending},
			After:      map[string]interface{}{"status": status},
			ActorID:    actor.ID,
			MeetingID:  &draft.MeetingID,
		}); err != nil {
			return ucerrors.Internal(err)
		}

		draft.Status = status
		draft.UpdatedAt = time.Now()
		disposed = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return disposed, nil
}

// ListByMeeting returns all drafts for a meeting, newest first
func (s *Service) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.AiDraft, error) {
	drafts, err := s.draftRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}
	return drafts, nil
}
