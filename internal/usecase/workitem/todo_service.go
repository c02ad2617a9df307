package workitem

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

// TodoService handles guarded todo mutations. Role checks happen in
// the calling layer; the service trusts the actor it is handed and
// enforces only the meeting-state gate.
type TodoService struct {
	db          *gorm.DB
	todoRepo    *repository.TodoRepository
	meetingRepo *repository.MeetingRepository
	recorder    *audit.Recorder
	logger      *zap.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(
	db *gorm.DB,
	todoRepo *repository.TodoRepository,
	meetingRepo *repository.MeetingRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *TodoService {
	return &TodoService{
		db:          db,
		todoRepo:    todoRepo,
		meetingRepo: meetingRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	MeetingID   uuid.UUID
	Title       string
	Description *string
	Status      entities.TodoStatus
	DueDate     *time.Time
	OwnerID     *uuid.UUID
}

// Create adds a todo to an ACTIVE meeting
func (s *TodoService) Create(ctx context.Context, input CreateTodoInput, actor entities.Actor) (*entities.Todo, error) {
	status := input.Status
	if status == "" {
		status = entities.TodoStatusNotStarted
	}
	if !status.IsValid() {
		return nil, ucerrors.Validationf("invalid todo status %q", status)
	}

	var todo *entities.Todo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireActiveMeeting(ctx, s.meetingRepo.WithTx(tx), input.MeetingID, "add todos"); err != nil {
			return err
		}

		todo = &entities.Todo{
			Title:       input.Title,
			Description: input.Description,
			Status:      status,
			DueDate:     input.DueDate,
			OwnerID:     input.OwnerID,
			MeetingID:   input.MeetingID,
		}
		if err := s.todoRepo.WithTx(tx).Create(ctx, todo); err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "Todo",
			EntityID:   todo.ID,
			After:      todo,
			ActorID:    actor.ID,
			MeetingID:  &input.MeetingID,
		})
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodoInput represents a partial todo update; nil fields are
// left unchanged
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Status      *entities.TodoStatus
	DueDate     *time.Time
	ClearDue    bool
	OwnerID     *uuid.UUID
}

// Update mutates a todo on an ACTIVE meeting
func (s *TodoService) Update(ctx context.Context, id uuid.UUID, input UpdateTodoInput, actor entities.Actor) (*entities.Todo, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, ucerrors.Validationf("invalid todo status %q", *input.Status)
	}

	var todo *entities.Todo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		todos := s.todoRepo.WithTx(tx)

		existing, err := todos.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("todo")
			}
			return fmt.Errorf("failed to load todo: %w", err)
		}
		if existing.Meeting == nil || !existing.Meeting.IsActive() {
			return ucerrors.InvalidState("cannot modify todos in archived meetings")
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
		if input.ClearDue {
			existing.DueDate = nil
		} else if input.DueDate != nil {
			existing.DueDate = input.DueDate
		}
		if input.OwnerID != nil {
			existing.OwnerID = input.OwnerID
		}

		if err := todos.Save(ctx, existing); err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}
		todo = existing

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "Todo",
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
	return todo, nil
}

// Delete removes a todo from an ACTIVE meeting
func (s *TodoService) Delete(ctx context.Context, id uuid.UUID, actor entities.Actor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		todos := s.todoRepo.WithTx(tx)

		existing, err := todos.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("todo")
			}
			return fmt.Errorf("failed to load todo: %w", err)
		}
		if existing.Meeting == nil || !existing.Meeting.IsActive() {
			return ucerrors.InvalidState("cannot delete todos from archived meetings")
		}

		if err := todos.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionDelete,
			EntityType: "Todo",
			EntityID:   existing.ID,
			Before:     existing,
			ActorID:    actor.ID,
			MeetingID:  &existing.MeetingID,
		})
	})
}

// ListByMeeting retrieves a meeting's todos
func (s *TodoService) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Todo, error) {
	todos, err := s.todoRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}
