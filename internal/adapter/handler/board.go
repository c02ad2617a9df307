package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/board"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/draft"
)

// Board handles board dashboard HTTP requests
type Board struct {
	boardService *board.Service
	draftService *draft.Service
	logger       *zap.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *board.Service, draftService *draft.Service, logger *zap.Logger) *Board {
	return &Board{
		boardService: boardService,
		draftService: draftService,
		logger:       logger,
	}
}

// Dashboard handles GET /board/dashboard
func (h *Board) Dashboard(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanViewBoard() {
		return forbidden(c)
	}

	dashboard, err := h.boardService.Dashboard(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dashboard)
}

// GenerateSummary handles POST /board/summary. The summary is a
// read-only payload; no draft is persisted.
func (h *Board) GenerateSummary(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanViewBoard() {
		return forbidden(c)
	}

	dashboard, err := h.boardService.Dashboard(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	companies := make([]draft.BoardCompanyData, 0, len(dashboard.Companies))
	for _, company := range dashboard.Companies {
		data := draft.BoardCompanyData{
			Name:              company.CompanyName,
			AvgRating:         company.AvgRating,
			OpenIssueCount:    company.OpenIssueCount,
			OffTrackRocks:     company.OffTrackRocks,
			CarryForwardCount: company.CarryForwardCount,
		}
		if company.TodoCompletionRate != nil {
			pct := *company.TodoCompletionRate * 100
			data.TodoCompletionPct = &pct
		}
		companies = append(companies, data)
	}

	summary := h.draftService.GenerateBoardSummary(c.Request().Context(), companies)

	return HandleSuccess(h.logger, c, http.StatusOK, summary)
}
