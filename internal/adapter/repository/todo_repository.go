package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// TodoRepository handles todo data access
type TodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *TodoRepository) WithTx(tx *gorm.DB) *TodoRepository {
	return &TodoRepository{db: tx}
}

// Create inserts a new todo
func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// FindByID retrieves a todo with its parent meeting
func (r *TodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Todo, error) {
	var todo entities.Todo
	err := r.db.WithContext(ctx).
		Preload("Meeting").
		Preload("Owner").
		Where("id = ?", id).
		First(&todo).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByMeeting retrieves all todos of a meeting, newest first
func (r *TodoRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.Todo, error) {
	var todos []*entities.Todo
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&todos).Error
	return todos, err
}

// Save persists changes to an existing todo
func (r *TodoRepository) Save(ctx context.Context, todo *entities.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// Delete removes a todo
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Todo{}, "id = ?", id).Error
}
