package handler

import (
	"context"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingdto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/meeting"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/database"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/meeting"
)

// Meeting handles meeting lifecycle HTTP requests
type Meeting struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /meetings
func (h *Meeting) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req meetingdto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team_id")
	}

	input := meeting.CreateInput{
		TeamID: teamID,
		Title:  req.Title,
	}
	if req.MeetingDate != nil {
		input.MeetingDate = *req.MeetingDate
	}

	created, err := h.service.Create(c.Request().Context(), input, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, created)
}

// Get handles GET /meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	found, successor, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, map[string]interface{}{
		"meeting":   found,
		"successor": successor,
	})
}

// List handles GET /meetings
func (h *Meeting) List(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	var req meetingdto.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	filters := repository.MeetingFilters{Limit: req.Limit}
	if req.TeamID != nil {
		teamID, err := uuid.Parse(*req.TeamID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid team_id")
		}
		filters.TeamID = &teamID
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		filters.Status = &status
	}

	meetings, err := h.service.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, meetings)
}

// Archive handles POST /meetings/:id/archive. A transient serialization
// failure gets exactly one retry; everything else surfaces immediately.
func (h *Meeting) Archive(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanArchive() {
		return forbidden(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	var result *meeting.ArchiveResult
	err = retryOnStoreConflict(ctx, func() error {
		var archiveErr error
		result, archiveErr = h.service.Archive(ctx, id, actor)
		return archiveErr
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, result)
}

// retryOnStoreConflict runs op, retrying once when the store reports a
// transient serialization or deadlock failure. A conflict that survives
// the retry surfaces as Conflict so callers see 409, not 500.
func retryOnStoreConflict(ctx context.Context, op func() error) error {
	operation := func() error {
		err := op()
		if err != nil && !database.IsRetryableConflict(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		if database.IsRetryableConflict(err) {
			return ucerrors.Conflict("archive conflicted with a concurrent update")
		}
		return err
	}
	return nil
}
