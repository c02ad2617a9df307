package meeting

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

// SnapshotExporter receives a best-effort copy of an archived meeting
// after the archive transaction commits. Failures are logged and never
// surfaced to the archiving caller.
type SnapshotExporter interface {
	ExportMeetingSnapshot(ctx context.Context, snapshot ArchiveSnapshot) error
}

// ArchiveSnapshot is the exported record of an archived meeting
type ArchiveSnapshot struct {
	Meeting *entities.Meeting  `json:"meeting"`
	Todos   []*entities.Todo   `json:"todos"`
	Issues  []*entities.Issue  `json:"issues"`
	Ratings []*entities.Rating `json:"ratings"`
}

// Service owns the meeting lifecycle: creation under the
// single-active-meeting invariant and the archive transition with its
// carry-forward rules. All mutations run in a single transaction.
type Service struct {
	db          *gorm.DB
	meetingRepo *repository.MeetingRepository
	teamRepo    *repository.TeamRepository
	todoRepo    *repository.TodoRepository
	issueRepo   *repository.IssueRepository
	ratingRepo  *repository.RatingRepository
	recorder    *audit.Recorder
	exporter    SnapshotExporter
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new meeting lifecycle service. The exporter may
// be nil, in which case no snapshots are exported.
func NewService(
	db *gorm.DB,
	meetingRepo *repository.MeetingRepository,
	teamRepo *repository.TeamRepository,
	todoRepo *repository.TodoRepository,
	issueRepo *repository.IssueRepository,
	ratingRepo *repository.RatingRepository,
	recorder *audit.Recorder,
	exporter SnapshotExporter,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:          db,
		meetingRepo: meetingRepo,
		teamRepo:    teamRepo,
		todoRepo:    todoRepo,
		issueRepo:   issueRepo,
		ratingRepo:  ratingRepo,
		recorder:    recorder,
		exporter:    exporter,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateInput represents input for creating a meeting
type CreateInput struct {
	TeamID      uuid.UUID
	Title       string
	MeetingDate time.Time
}

// Create opens a new ACTIVE meeting for a team. The check against an
// existing ACTIVE meeting runs inside the same transaction as the
// insert so a concurrent create cannot slip between check and write;
// the partial unique index in the schema backstops the same invariant.
func (s *Service) Create(ctx context.Context, input CreateInput, actor entities.Actor) (*entities.Meeting, error) {
	var meeting *entities.Meeting

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teams := s.teamRepo.WithTx(tx)
		meetings := s.meetingRepo.WithTx(tx)

		team, err := teams.FindByID(ctx, input.TeamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("team")
			}
			return fmt.Errorf("failed to load team: %w", err)
		}

		if _, err := meetings.FindActiveByTeam(ctx, input.TeamID); err == nil {
			return ucerrors.Conflict("team already has an active meeting, archive the current one first")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check active meeting: %w", err)
		}

		date := input.MeetingDate
		if date.IsZero() {
			date = s.now()
		}
		title := input.Title
		if title == "" {
			title = entities.SuccessorTitle(team.Name, date)
		}

		meeting = &entities.Meeting{
			Title:       title,
			TeamID:      input.TeamID,
			Status:      entities.MeetingStatusActive,
			MeetingDate: date,
		}
		if err := meetings.Create(ctx, meeting); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ucerrors.Conflict("team already has an active meeting")
			}
			return fmt.Errorf("failed to create meeting: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "Meeting",
			EntityID:   meeting.ID,
			After:      meeting,
			ActorID:    actor.ID,
			MeetingID:  &meeting.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("team_id", input.TeamID.String()))
	return meeting, nil
}

// ArchiveResult is returned by a successful archive
type ArchiveResult struct {
	ArchivedMeeting *entities.Meeting `json:"archived_meeting"`
	NextMeeting     *entities.Meeting `json:"next_meeting"`
	CarriedTodos    int               `json:"carried_todos"`
	CarriedIssues   int               `json:"carried_issues"`
}

// Archive locks a meeting and spawns its successor in one all-or-nothing
// transaction: the rating-completeness gate runs first with zero side
// effects on failure, then the meeting transitions to ARCHIVED, the
// successor is created one week later, and unresolved todos and issues
// are copied forward as new linked items. The originals are never
// mutated; history stays intact.
func (s *Service) Archive(ctx context.Context, meetingID uuid.UUID, actor entities.Actor) (*ArchiveResult, error) {
	var result *ArchiveResult
	var snapshot *ArchiveSnapshot

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meetings := s.meetingRepo.WithTx(tx)
		todos := s.todoRepo.WithTx(tx)
		issues := s.issueRepo.WithTx(tx)
		ratings := s.ratingRepo.WithTx(tx)

		meeting, err := meetings.FindByIDWithMembers(ctx, meetingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("meeting")
			}
			return fmt.Errorf("failed to load meeting: %w", err)
		}
		if meeting.IsArchived() {
			return ucerrors.InvalidState("meeting is already archived")
		}

		meetingTodos, err := todos.ListByMeeting(ctx, meetingID)
		if err != nil {
			return fmt.Errorf("failed to load todos: %w", err)
		}
		meetingIssues, err := issues.ListByMeeting(ctx, meetingID)
		if err != nil {
			return fmt.Errorf("failed to load issues: %w", err)
		}
		meetingRatings, err := ratings.ListByMeeting(ctx, meetingID)
		if err != nil {
			return fmt.Errorf("failed to load ratings: %w", err)
		}

		// Rating-completeness gate: every member must have rated.
		if missing := countMissingRaters(meeting.Team.MemberIDs(), meetingRatings); missing > 0 {
			return ucerrors.Validationf(
				"missing ratings from %d team member(s), all members must rate before archiving", missing)
		}

		archivedAt := s.now()
		rows, err := meetings.MarkArchived(ctx, meetingID, archivedAt)
		if err != nil {
			return fmt.Errorf("failed to archive meeting: %w", err)
		}
		if rows == 0 {
			// A concurrent archiver transitioned the row first.
			return ucerrors.InvalidState("meeting is already archived")
		}
		meeting.Status = entities.MeetingStatusArchived
		meeting.ArchivedAt = &archivedAt

		nextDate := meeting.NextMeetingDate()
		next := &entities.Meeting{
			Title:             entities.SuccessorTitle(meeting.Team.Name, nextDate),
			TeamID:            meeting.TeamID,
			Status:            entities.MeetingStatusActive,
			MeetingDate:       nextDate,
			PreviousMeetingID: &meeting.ID,
		}
		if err := meetings.Create(ctx, next); err != nil {
			return fmt.Errorf("failed to create successor meeting: %w", err)
		}

		carriedTodos := 0
		for _, t := range meetingTodos {
			if !t.ShouldCarryForward(archivedAt) {
				continue
			}
			if err := todos.Create(ctx, t.CarryInto(next.ID)); err != nil {
				return fmt.Errorf("failed to carry todo forward: %w", err)
			}
			carriedTodos++
		}

		carriedIssues := 0
		for _, i := range meetingIssues {
			if !i.ShouldCarryForward() {
				continue
			}
			if err := issues.Create(ctx, i.CarryInto(next.ID)); err != nil {
				return fmt.Errorf("failed to carry issue forward: %w", err)
			}
			carriedIssues++
		}

		err = s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionArchive,
			EntityType: "Meeting",
			EntityID:   meeting.ID,
			Before:     map[string]interface{}{"status": entities.MeetingStatusActive},
			After: map[string]interface{}{
				"status":        entities.MeetingStatusArchived,
				"nextMeetingId": next.ID,
				"carriedTodos":  carriedTodos,
				"carriedIssues": carriedIssues,
			},
			ActorID:   actor.ID,
			MeetingID: &meeting.ID,
		})
		if err != nil {
			return err
		}

		result = &ArchiveResult{
			ArchivedMeeting: meeting,
			NextMeeting:     next,
			CarriedTodos:    carriedTodos,
			CarriedIssues:   carriedIssues,
		}
		snapshot = &ArchiveSnapshot{
			Meeting: meeting,
			Todos:   meetingTodos,
			Issues:  meetingIssues,
			Ratings: meetingRatings,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("meeting archived",
		zap.String("meeting_id", meetingID.String()),
		zap.String("next_meeting_id", result.NextMeeting.ID.String()),
		zap.Int("carried_todos", result.CarriedTodos),
		zap.Int("carried_issues", result.CarriedIssues))

	// Snapshot export is best effort and stays outside the transaction.
	if s.exporter != nil {
		if err := s.exporter.ExportMeetingSnapshot(ctx, *snapshot); err != nil {
			s.logger.Warn("failed to export meeting snapshot",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err))
		}
	}

	return result, nil
}

// Get retrieves a meeting with its derived forward link
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, *entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ucerrors.NotFound("meeting")
		}
		return nil, nil, fmt.Errorf("failed to load meeting: %w", err)
	}

	next, err := s.meetingRepo.FindSuccessor(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to resolve successor: %w", err)
		}
		next = nil
	}
	return meeting, next, nil
}

// List retrieves meetings by team and/or status
// Summary is a meeting with its work-item totals for list views
type Summary struct {
	*entities.Meeting
	TodoCount   int64 `json:"todo_count"`
	IssueCount  int64 `json:"issue_count"`
	RatingCount int64 `json:"rating_count"`
}

func (s *Service) List(ctx context.Context, filters repository.MeetingFilters) ([]*Summary, error) {
	meetings, err := s.meetingRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	ids := make([]uuid.UUID, len(meetings))
	for i, m := range meetings {
		ids[i] = m.ID
	}
	counts, err := s.meetingRepo.CountWorkItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count work items: %w", err)
	}

	summaries := make([]*Summary, len(meetings))
	for i, m := range meetings {
		c := counts[m.ID]
		summaries[i] = &Summary{
			Meeting:     m,
			TodoCount:   c.Todos,
			IssueCount:  c.Issues,
			RatingCount: c.Ratings,
		}
	}
	return summaries, nil
}

// countMissingRaters returns how many member ids have no rating
func countMissingRaters(memberIDs []uuid.UUID, ratings []*entities.Rating) int {
	rated := make(map[uuid.UUID]struct{}, len(ratings))
	for _, r := range ratings {
		rated[r.UserID] = struct{}{}
	}
	missing := 0
	for _, id := range memberIDs {
		if _, ok := rated[id]; !ok {
			missing++
		}
	}
	return missing
}
