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

// Todo handles todo HTTP requests
type Todo struct {
	service *workitem.TodoService
	logger  *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(service *workitem.TodoService, logger *zap.Logger) *Todo {
	return &Todo{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /todos
func (h *Todo) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req workitemdto.CreateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meeting_id")
	}

	input := workitem.CreateTodoInput{
		MeetingID:   meetingID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid owner_id")
		}
		input.OwnerID = &ownerID
	}

	created, err := h.service.Create(c.Request().Context(), input, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, created)
}

// Update handles PATCH /todos/:id
func (h *Todo) Update(c echo.Context) error {
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

	var req workitemdto.UpdateTodoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := workitem.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
	}
	if req.Status != nil {
		status := entities.TodoStatus(*req.Status)
		input.Status = &status
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid owner_id")
		}
		input.OwnerID = &ownerID
	}

	updated, err := h.service.Update(c.Request().Context(), id, input, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, updated)
}

// Delete handles DELETE /todos/:id
func (h *Todo) Delete(c echo.Context) error {
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

// ListByMeeting handles GET /meetings/:id/todos
func (h *Todo) ListByMeeting(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	meetingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	todos, err := h.service.ListByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, todos)
}
