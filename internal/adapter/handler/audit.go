package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
)

// Audit handles the admin read path over audit records
type Audit struct {
	repo   *repository.AuditRepository
	logger *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(repo *repository.AuditRepository, logger *zap.Logger) *Audit {
	return &Audit{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /audit
func (h *Audit) List(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	filters := repository.AuditFilters{
		EntityType: c.QueryParam("entity_type"),
	}
	if raw := c.QueryParam("meeting_id"); raw != "" {
		meetingID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid meeting_id")
		}
		filters.MeetingID = &meetingID
	}
	if raw := c.QueryParam("entity_id"); raw != "" {
		entityID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid entity_id")
		}
		filters.EntityID = &entityID
	}

	logs, err := h.repo.List(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, logs)
}
