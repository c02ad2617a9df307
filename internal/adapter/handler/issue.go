package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	workitemdto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/workitem"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/workitem"
)

// Issue handles issue HTTP requests
type Issue struct {
	service *workitem.IssueService
	logger  *zap.Logger
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(service *workitem.IssueService, logger *zap.Logger) *Issue {
	return &Issue{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /issues
func (h *Issue) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req workitemdto.CreateIssueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meeting_id")
	}

	input := workitem.CreateIssueInput{
		MeetingID:   meetingID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    entities.IssuePriority(req.Priority),
	}

	created, err := h.service.Create(c.Request().Context(), input, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, created)
}

// Update handles PATCH /issues/:id
func (h *Issue) Update(c echo.Context) error {
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

	var req workitemdto.UpdateIssueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := workitem.UpdateIssueInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := entities.IssueStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := entities.IssuePriority(*req.Priority)
		input.Priority = &priority
	}

	updated, err := h.service.Update(c.Request().Context(), id, input, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, updated)
}

// Delete handles DELETE /issues/:id
func (h *Issue) Delete(c echo.Context) error {
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

	if err := h.service.Delete(c.Request().Context(), id, actor); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, nil)
}

// ListByMeeting handles GET /meetings/:id/issues
func (h *Issue) ListByMeeting(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	meetingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	issues, err := h.service.ListByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, issues)
}
