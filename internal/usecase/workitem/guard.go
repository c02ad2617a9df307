package workitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// requireActiveMeeting loads a meeting and enforces the edit gate:
// work items may only be created or mutated while the parent meeting
// is ACTIVE.
func requireActiveMeeting(ctx context.Context, meetings *repository.MeetingRepository, meetingID uuid.UUID, action string) (*entities.Meeting, error) {
	meeting, err := meetings.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ucerrors.NotFound("meeting")
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	if !meeting.IsActive() {
		return nil, ucerrors.InvalidState(fmt.Sprintf("can only %s on active meetings", action))
	}
	return meeting, nil
}
