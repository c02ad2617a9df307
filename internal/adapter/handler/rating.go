package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	workitemdto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/workitem"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/workitem"
)

// Rating handles meeting rating HTTP requests
type Rating struct {
	service *workitem.RatingService
	logger  *zap.Logger
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(service *workitem.RatingService, logger *zap.Logger) *Rating {
	return &Rating{
		service: service,
		logger:  logger,
	}
}

// Submit handles POST /ratings. Any authenticated member may rate;
// resubmitting overwrites the member's previous score.
func (h *Rating) Submit(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req workitemdto.SubmitRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid meeting_id")
	}

	rating, err := h.service.Submit(c.Request().Context(), meetingID, req.Score, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, rating)
}

// ListByMeeting handles GET /meetings/:id/ratings
func (h *Rating) ListByMeeting(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	meetingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ratings, err := h.service.ListByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, ratings)
}
