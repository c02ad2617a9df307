package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// Entry describes one state-changing operation to record. Before and
// After are arbitrary snapshots serialized as-is; leave them nil to
// omit (before on create, after on delete).
type Entry struct {
	Action     entities.AuditAction
	EntityType string
	EntityID   uuid.UUID
	Before     interface{}
	After      interface{}
	ActorID    uuid.UUID
	MeetingID  *uuid.UUID
}

// Recorder appends immutable audit records. It writes through the
// transaction handle it is given so the record commits or aborts with
// the mutation it describes.
type Recorder struct{}

// NewRecorder creates a new audit recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one audit record inside the caller's transaction
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, e Entry) error {
	row := &entities.AuditLog{
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		UserID:     e.ActorID,
		MeetingID:  e.MeetingID,
	}

	if e.Before != nil {
		b, err := json.Marshal(e.Before)
		if err != nil {
			return fmt.Errorf("failed to marshal before snapshot: %w", err)
		}
		row.Before = datatypes.JSON(b)
	}
	if e.After != nil {
		b, err := json.Marshal(e.After)
		if err != nil {
			return fmt.Errorf("failed to marshal after snapshot: %w", err)
		}
		row.After = datatypes.JSON(b)
	}

	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}
