package workitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// IssueService handles guarded issue mutations
type IssueService struct {
	db          *gorm.DB
	issueRepo   *repository.IssueRepository
	meetingRepo *repository.MeetingRepository
	recorder    *audit.Recorder
	logger      *zap.Logger
}

// NewIssueService creates a new issue service
func NewIssueService(
	db *gorm.DB,
	issueRepo *repository.IssueRepository,
	meetingRepo *repository.MeetingRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *IssueService {
	return &IssueService{
		db:          db,
		issueRepo:   issueRepo,
		meetingRepo: meetingRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateIssueInput represents input for creating an issue
type CreateIssueInput struct {
	MeetingID   uuid.UUID
	Title       string
	Description *string
	Status      entities.IssueStatus
	Priority    entities.IssuePriority
	OwnerID     *uuid.UUID
}

// Create adds an issue to an ACTIVE meeting; the actor becomes its creator
func (s *IssueService) Create(ctx context.Context, input CreateIssueInput, actor entities.Actor) (*entities.Issue, error) {
	status := input.Status
	if status == "" {
		status = entities.IssueStatusOpen
	}
	if !status.IsValid() {
		return nil, ucerrors.Validationf("invalid issue status %q", status)
	}
	priority := input.Priority
	if priority == "" {
		priority = entities.IssuePriorityMedium
	}
	if !priority.IsValid() {
		return nil, ucerrors.Validationf("invalid issue priority %q", priority)
	}

	var issue *entities.Issue
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireActiveMeeting(ctx, s.meetingRepo.WithTx(tx), input.MeetingID, "add issues"); err != nil {
			return err
		}

		issue = &entities.Issue{
			Title:       input.Title,
			Description: input.Description,
			Status:      status,
			Priority:    priority,
			CreatorID:   actor.ID,
			OwnerID:     input.OwnerID,
			MeetingID:   input.MeetingID,
		}
		if err := s.issueRepo.WithTx(tx).Create(ctx, issue); err != nil {
			return fmt.Errorf("failed to create issue: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "Issue",
			EntityID:   issue.ID,
			After:      issue,
			ActorID:    actor.ID,
			MeetingID:  &input.MeetingID,
		})
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// UpdateIssueInput represents a partial issue update
type UpdateIssueInput struct {
	Title       *string
	Description *string
	Status      *entities.IssueStatus
	Priority    *entities.IssuePriority
	OwnerID     *uuid.UUID
}

// Update mutates an issue on an ACTIVE meeting
func (s *IssueService) Update(ctx context.Context, id uuid.UUID, input UpdateIssueInput, actor entities.Actor) (*entities.Issue, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, ucerrors.Validationf("invalid issue status %q", *input.Status)
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return nil, ucerrors.Validationf("invalid issue priority %q", *input.Priority)
	}

	var issue *entities.Issue
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issues := s.issueRepo.WithTx(tx)

		existing, err := issues.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("issue")
			}
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if existing.Meeting == nil || !existing.Meeting.IsActive() {
			return ucerrors.InvalidState("cannot modify issues in archived meetings")
		}

		before := *existing
		if input.Title != nil {
			existing.Title = *input.Title
		}
		if input.Description != nil {
			existing.Description = input.Description
		}
		if input.Status != nil {
			existing.Status = *input.Status
		}
		if input.Priority != nil {
			existing.Priority = *input.Priority
		}
		if input.OwnerID != nil {
			existing.OwnerID = input.OwnerID
		}

		if err := issues.Save(ctx, existing); err != nil {
			return fmt.Errorf("failed to update issue: %w", err)
		}
		issue = existing

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "Issue",
			EntityID:   existing.ID,
			Before:     before,
			After:      existing,
			ActorID:    actor.ID,
			MeetingID:  &existing.MeetingID,
		})
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// Delete removes an issue from an ACTIVE meeting
func (s *IssueService) Delete(ctx context.Context, id uuid.UUID, actor entities.Actor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issues := s.issueRepo.WithTx(tx)

		existing, err := issues.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("issue")
			}
			return fmt.Errorf("failed to load issue: %w", err)
		}
		if existing.Meeting == nil || !existing.Meeting.IsActive() {
			return ucerrors.InvalidState("cannot delete issues from archived meetings")
		}

		if err := issues.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete issue: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionDelete,
			EntityType: "Issue",
			EntityID:   existing.ID,
			Before:     existing,
			ActorID:    actor.ID,
			MeetingID:  &existing.MeetingID,
		})
	})
}

// ListByMeeting retrieves a meeting's issues ordered by priority
func (s *IssueService) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Issue, error) {
	issues, err := s.issueRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}
