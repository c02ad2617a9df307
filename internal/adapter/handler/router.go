package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg       *config.Config
	auth      *Auth
	meeting   *Meeting
	todo      *Todo
	issue     *Issue
	rating    *Rating
	scorecard *Scorecard
	draft     *Draft
	board     *Board
	audit     *Audit
	directory *Directory
	authMW    echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	auth *Auth,
	meeting *Meeting,
	todo *Todo,
	issue *Issue,
	rating *Rating,
	scorecard *Scorecard,
	draft *Draft,
	board *Board,
	audit *Audit,
	directory *Directory,
	authMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:       cfg,
		auth:      auth,
		meeting:   meeting,
		todo:      todo,
		issue:     issue,
		rating:    rating,
		scorecard: scorecard,
		draft:     draft,
		board:     board,
		audit:     audit,
		directory: directory,
		authMW:    authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	v1.POST("/auth/dev-token", rt.auth.DevToken)

	// Everything else requires authentication
	api := v1.Group("", rt.authMW)

	rt.setupMeetingRoutes(api)
	rt.setupWorkItemRoutes(api)
	rt.setupDraftRoutes(api)
	rt.setupBoardRoutes(api)
	rt.setupDirectoryRoutes(api)

	api.GET("/audit", rt.audit.List)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.POST("", rt.meeting.Create)
	meetings.GET("", rt.meeting.List)
	meetings.GET("/:id", rt.meeting.Get)
	meetings.POST("/:id/archive", rt.meeting.Archive)
	meetings.GET("/:id/todos", rt.todo.ListByMeeting)
	meetings.GET("/:id/issues", rt.issue.ListByMeeting)
	meetings.GET("/:id/ratings", rt.rating.ListByMeeting)
	meetings.GET("/:id/scorecard/entries", rt.scorecard.ListEntriesByMeeting)
	meetings.GET("/:id/drafts", rt.draft.ListByMeeting)
}

func (rt *Router) setupWorkItemRoutes(g *echo.Group) {
	todos := g.Group("/todos")
	todos.POST("", rt.todo.Create)
	todos.PATCH("/:id", rt.todo.Update)
	todos.DELETE("/:id", rt.todo.Delete)

	issues := g.Group("/issues")
	issues.POST("", rt.issue.Create)
	issues.PATCH("/:id", rt.issue.Update)
	issues.DELETE("/:id", rt.issue.Delete)

	g.POST("/ratings", rt.rating.Submit)

	scorecard := g.Group("/scorecard")
	scorecard.POST("/metrics", rt.scorecard.CreateMetric)
	scorecard.PATCH("/metrics/:id", rt.scorecard.UpdateMetric)
	scorecard.PUT("/entries", rt.scorecard.UpsertEntry)
}

func (rt *Router) setupDraftRoutes(g *echo.Group) {
	drafts := g.Group("/drafts")
	drafts.POST("", rt.draft.Generate)
	drafts.POST("/:id/dispose", rt.draft.Dispose)
}

func (rt *Router) setupBoardRoutes(g *echo.Group) {
	board := g.Group("/board")
	board.GET("/dashboard", rt.board.Dashboard)
	board.POST("/summary", rt.board.GenerateSummary)
}

func (rt *Router) setupDirectoryRoutes(g *echo.Group) {
	companies := g.Group("/companies")
	companies.POST("", rt.directory.CreateCompany)
	companies.GET("", rt.directory.ListCompanies)

	teams := g.Group("/teams")
	teams.POST("", rt.directory.CreateTeam)
	teams.GET("", rt.directory.ListTeams)
	teams.GET("/:id", rt.directory.GetTeam)
	teams.POST("/:id/members", rt.directory.AddMember)
	teams.DELETE("/:id/members/:userId", rt.directory.RemoveMember)
	teams.GET("/:id/scorecard/metrics", rt.scorecard.ListMetrics)

	users := g.Group("/users")
	users.POST("", rt.directory.CreateUser)
	users.GET("", rt.directory.ListUsers)

	rocks := g.Group("/rocks")
	rocks.POST("", rt.directory.CreateRock)
	rocks.GET("", rt.directory.ListRocks)
	rocks.PATCH("/:id", rt.directory.UpdateRock)
	rocks.DELETE("/:id", rt.directory.DeleteRock)
	rocks.POST("/:id/milestones", rt.directory.AddMilestone)

	g.PATCH("/milestones/:id", rt.directory.SetMilestoneDone)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
