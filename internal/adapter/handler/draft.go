package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	draftdto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/draft"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/draft"
)

// Draft handles AI draft HTTP requests
type Draft struct {
	service *draft.Service
	logger  *zap.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(service *draft.Service, logger *zap.Logger) *Draft {
	return &Draft{
		service: service,
		logger:  logger,
	}
}

// Generate handles POST /drafts
func (h *Draft) Generate(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req draftdto.GenerateDraftRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meeting_id")
	}

	generated, err := h.service.GenerateMeetingSummary(c.Request().Context(), actor, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, generated)
}

// Dispose handles POST /drafts/:id/dispose
func (h *Draft) Dispose(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req draftdto.DisposeDraftRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	disposed, err := h.service.Dispose(c.Request().Context(), actor, id, req.Apply)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, disposed)
}

// ListByMeeting handles GET /meetings/:id/drafts
func (h *Draft) ListByMeeting(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	meetingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	drafts, err := h.service.ListByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, drafts)
}
