package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	workitemdto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/workitem"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/workitem"
)

// Scorecard handles scorecard HTTP requests
type Scorecard struct {
	service *workitem.ScorecardService
	logger  *zap.Logger
}

// NewScorecardHandler creates a new scorecard handler
func NewScorecardHandler(service *workitem.ScorecardService, logger *zap.Logger) *Scorecard {
	return &Scorecard{
		service: service,
		logger:  logger,
	}
}

// CreateMetric handles POST /scorecard/metrics
func (h *Scorecard) CreateMetric(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req workitemdto.CreateMetricRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team_id")
	}

	metric, err := h.service.CreateMetric(c.Request().Context(), workitem.CreateMetricInput{
		TeamID: teamID,
		Name:   req.Name,
		Target: req.Target,
		Unit:   req.Unit,
	}, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, metric)
}

// UpdateMetric handles PATCH /scorecard/metrics/:id
func (h *Scorecard) UpdateMetric(c echo.Context) error {
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

	var req workitemdto.UpdateMetricRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	metric, err := h.service.UpdateMetric(c.Request().Context(), id, workitem.UpdateMetricInput{
		Name:   req.Name,
		Target: req.Target,
		Unit:   req.Unit,
	}, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, metric)
}

// ListMetrics handles GET /teams/:id/scorecard/metrics
func (h *Scorecard) ListMetrics(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	teamID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	metrics, err := h.service.ListMetrics(c.Request().Context(), teamID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, metrics)
}

// UpsertEntry handles PUT /scorecard/entries
func (h *Scorecard) UpsertEntry(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req workitemdto.UpsertEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	metricID, err := uuid.Parse(req.MetricID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid metric_id")
	}
	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meeting_id")
	}

	entry, err := h.service.UpsertEntry(c.Request().Context(), workitem.UpsertEntryInput{
		MetricID:  metricID,
		MeetingID: meetingID,
		Actual:    req.Actual,
	}, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, entry)
}

// ListEntriesByMeeting handles GET /meetings/:id/scorecard/entries
func (h *Scorecard) ListEntriesByMeeting(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	meetingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.service.ListEntriesByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, entries)
}
