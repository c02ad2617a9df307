package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	directorydto "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/dto/directory"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/directory"
)

// Directory handles company, team, user, and rock HTTP requests
type Directory struct {
	service *directory.Service
	logger  *zap.Logger
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(service *directory.Service, logger *zap.Logger) *Directory {
	return &Directory{
		service: service,
		logger:  logger,
	}
}

// CreateCompany handles POST /companies
func (h *Directory) CreateCompany(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	var req directorydto.CreateCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.service.CreateCompany(c.Request().Context(), req.Name, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, company)
}

// ListCompanies handles GET /companies
func (h *Directory) ListCompanies(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	companies, err := h.service.ListCompanies(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, companies)
}

// CreateTeam handles POST /teams
func (h *Directory) CreateTeam(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	var req directorydto.CreateTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid company_id")
	}

	team, err := h.service.CreateTeam(c.Request().Context(), companyID, req.Name, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, team)
}

// GetTeam handles GET /teams/:id
func (h *Directory) GetTeam(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	team, err := h.service.GetTeam(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, team)
}

// ListTeams handles GET /teams
func (h *Directory) ListTeams(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	var companyID *uuid.UUID
	if raw := c.QueryParam("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid company_id")
		}
		companyID = &id
	}

	teams, err := h.service.ListTeams(c.Request().Context(), companyID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, teams)
}

// AddMember handles POST /teams/:id/members
func (h *Directory) AddMember(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	teamID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req directorydto.AddMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	member, err := h.service.AddMember(c.Request().Context(), teamID, userID, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, member)
}

// RemoveMember handles DELETE /teams/:id/members/:userId
func (h *Directory) RemoveMember(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	teamID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	if err := h.service.RemoveMember(c.Request().Context(), teamID, userID, actor); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, nil)
}

// CreateUser handles POST /users
func (h *Directory) CreateUser(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	var req directorydto.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid company_id")
	}

	user, err := h.service.CreateUser(c.Request().Context(), directory.CreateUserInput{
		Email:     req.Email,
		Name:      req.Name,
		Role:      entities.UserRole(req.Role),
		CompanyID: companyID,
	}, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, user)
}

// ListUsers handles GET /users
func (h *Directory) ListUsers(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	var companyID *uuid.UUID
	if raw := c.QueryParam("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid company_id")
		}
		companyID = &id
	}

	users, err := h.service.ListUsers(c.Request().Context(), companyID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, users)
}

// CreateRock handles POST /rocks
func (h *Directory) CreateRock(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	var req directorydto.CreateRockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team_id")
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid owner_id")
	}

	rock, err := h.service.CreateRock(c.Request().Context(), directory.CreateRockInput{
		TeamID:  teamID,
		Title:   req.Title,
		OwnerID: ownerID,
		DueDate: req.DueDate,
	}, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, rock)
}

// UpdateRock handles PATCH /rocks/:id
func (h *Directory) UpdateRock(c echo.Context) error {
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

	var req directorydto.UpdateRockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := directory.UpdateRockInput{
		Title:   req.Title,
		DueDate: req.DueDate,
	}
	if req.Status != nil {
		status := entities.RockStatus(*req.Status)
		input.Status = &status
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid owner_id")
		}
		input.OwnerID = &ownerID
	}

	rock, err := h.service.UpdateRock(c.Request().Context(), id, input, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, rock)
}

// DeleteRock handles DELETE /rocks/:id
func (h *Directory) DeleteRock(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return forbidden(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteRock(c.Request().Context(), id, actor); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, nil)
}

// AddMilestone handles POST /rocks/:id/milestones
func (h *Directory) AddMilestone(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if !actor.CanEdit() {
		return forbidden(c)
	}

	rockID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req directorydto.AddMilestoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	milestone, err := h.service.AddMilestone(c.Request().Context(), directory.AddMilestoneInput{
		RockID:  rockID,
		Title:   req.Title,
		DueDate: req.DueDate,
	}, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, milestone)
}

// SetMilestoneDone handles PATCH /milestones/:id
func (h *Directory) SetMilestoneDone(c echo.Context) error {
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

	var req directorydto.SetMilestoneDoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	milestone, err := h.service.SetMilestoneDone(c.Request().Context(), id, *req.Done, actor)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, milestone)
}

// ListRocks handles GET /rocks
func (h *Directory) ListRocks(c echo.Context) error {
	if _, err := requireActor(c); err != nil {
		return err
	}

	var teamID *uuid.UUID
	if raw := c.QueryParam("team_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid team_id")
		}
		teamID = &id
	}

	rocks, err := h.service.ListRocks(c.Request().Context(), teamID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, rocks)
}
