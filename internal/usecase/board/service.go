package board

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/infrastructure/cache"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

const (
	// recentMeetingWindow bounds how far back the health metrics look
	recentMeetingWindow = 13

	dashboardCacheKey = "board:dashboard"
	dashboardCacheTTL = 5 * time.Minute
)

// TeamHealth aggregates one team's recent meeting outcomes
type TeamHealth struct {
	TeamID             uuid.UUID `json:"team_id"`
	TeamName           string    `json:"team_name"`
	MeetingCount       int       `json:"meeting_count"`
	AvgRating          *float64  `json:"avg_rating"`
	TodoCompletionRate *float64  `json:"todo_completion_rate"`
	OpenIssueCount     int       `json:"open_issue_count"`
	OffTrackRocks      int       `json:"off_track_rocks"`
	CarryForwardCount  int       `json:"carry_forward_count"`
}

// CompanyHealth rolls team health up to one company
type CompanyHealth struct {
	CompanyID          uuid.UUID    `json:"company_id"`
	CompanyName        string       `json:"company_name"`
	Teams              []TeamHealth `json:"teams"`
	AvgRating          *float64     `json:"avg_rating"`
	TodoCompletionRate *float64     `json:"todo_completion_rate"`
	OpenIssueCount     int          `json:"open_issue_count"`
	OffTrackRocks      int          `json:"off_track_rocks"`
	CarryForwardCount  int          `json:"carry_forward_count"`
}

// Dashboard is the full board view across all companies
type Dashboard struct {
	Companies   []CompanyHealth `json:"companies"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Service computes the board dashboard from recent meeting history.
// Results are cached because the aggregation reads every team's recent
// meetings on each computation.
type Service struct {
	companyRepo *repository.CompanyRepository
	teamRepo    *repository.TeamRepository
	meetingRepo *repository.MeetingRepository
	todoRepo    *repository.TodoRepository
	issueRepo   *repository.IssueRepository
	ratingRepo  *repository.RatingRepository
	rockRepo    *repository.RockRepository
	store       cache.Store
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a board service. The store may be nil to disable
// caching.
func NewService(
	companyRepo *repository.CompanyRepository,
	teamRepo *repository.TeamRepository,
	meetingRepo *repository.MeetingRepository,
	todoRepo *repository.TodoRepository,
	issueRepo *repository.IssueRepository,
	ratingRepo *repository.RatingRepository,
	rockRepo *repository.RockRepository,
	store cache.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		companyRepo: companyRepo,
		teamRepo:    teamRepo,
		meetingRepo: meetingRepo,
		todoRepo:    todoRepo,
		issueRepo:   issueRepo,
		ratingRepo:  ratingRepo,
		rockRepo:    rockRepo,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// Dashboard returns the board view, served from cache when fresh
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.store != nil {
		if cached, ok, err := s.store.Get(ctx, dashboardCacheKey); err != nil {
			s.logger.Warn("board cache read failed", zap.Error(err))
		} else if ok {
			var dashboard Dashboard
			if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
				return &dashboard, nil
			}
			s.logger.Warn("board cache entry corrupt, recomputing", zap.Error(err))
		}
	}

	dashboard, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if payload, err := json.Marshal(dashboard); err == nil {
			if err := s.store.Set(ctx, dashboardCacheKey, string(payload), dashboardCacheTTL); err != nil {
				s.logger.Warn("board cache write failed", zap.Error(err))
			}
		}
	}

	return dashboard, nil
}

// Invalidate drops the cached dashboard
func (s *Service) Invalidate(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("board cache invalidation failed", zap.Error(err))
	}
}

func (s *Service) compute(ctx context.Context) (*Dashboard, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}

	dashboard := &Dashboard{
		Companies:   make([]CompanyHealth, 0, len(companies)),
		GeneratedAt: s.now(),
	}

	for _, company := range companies {
		health, err := s.companyHealth(ctx, company)
		if err != nil {
			return nil, err
		}
		dashboard.Companies = append(dashboard.Companies, *health)
	}

	return dashboard, nil
}

func (s *Service) companyHealth(ctx context.Context, company *entities.Company) (*CompanyHealth, error) {
	teams, err := s.teamRepo.ListByCompany(ctx, &company.ID)
	if err != nil {
		return nil, ucerrors.Internal(err)
	}

	health := &CompanyHealth{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Teams:       make([]TeamHealth, 0, len(teams)),
	}

	var (
		ratingSum  float64
		ratingN    int
		todosDone  int
		todosTotal int
	)

	for _, team := range teams {
		teamHealth, stats, err := s.teamHealth(ctx, team)
		if err != nil {
			return nil, err
		}
		health.Teams = append(health.Teams, *teamHealth)

		ratingSum += stats.ratingSum
		ratingN += stats.ratingN
		todosDone += stats.todosDone
		todosTotal += stats.todosTotal
		health.OpenIssueCount += teamHealth.OpenIssueCount
		health.OffTrackRocks += teamHealth.OffTrackRocks
		health.CarryForwardCount += teamHealth.CarryForwardCount
	}

	health.AvgRating = average(ratingSum, ratingN)
	health.TodoCompletionRate = ratio(todosDone, todosTotal)
	return health, nil
}

// teamStats carries raw tallies upward so company averages weight by
// item count rather than by team
type teamStats struct {
	ratingSum  float64
	ratingN    int
	todosDone  int
	todosTotal int
}

func (s *Service) teamHealth(ctx context.Context, team *entities.Team) (*TeamHealth, *teamStats, error) {
	meetings, err := s.meetingRepo.ListRecentByTeam(ctx, team.ID, recentMeetingWindow)
	if err != nil {
		return nil, nil, ucerrors.Internal(err)
	}

	health := &TeamHealth{
		TeamID:       team.ID,
		TeamName:     team.Name,
		MeetingCount: len(meetings),
	}
	stats := &teamStats{}

	for _, m := range meetings {
		if m.IsArchived() {
			ratings, err := s.ratingRepo.ListByMeeting(ctx, m.ID)
			if err != nil {
				return nil, nil, ucerrors.Internal(err)
			}
			for _, r := range ratings {
				stats.ratingSum += float64(r.Score)
				stats.ratingN++
			}
		}

		todos, err := s.todoRepo.ListByMeeting(ctx, m.ID)
		if err != nil {
			return nil, nil, ucerrors.Internal(err)
		}
		for _, t := range todos {
			stats.todosTotal++
			if t.Status == entities.TodoStatusDone {
				stats.todosDone++
			}
			if t.CarriedFromID != nil {
				health.CarryForwardCount++
			}
		}

		issues, err := s.issueRepo.ListByMeeting(ctx, m.ID)
		if err != nil {
			return nil, nil, ucerrors.Internal(err)
		}
		for _, i := range issues {
			if i.Status != entities.IssueStatusSolved {
				health.OpenIssueCount++
			}
			if i.CarriedFromID != nil {
				health.CarryForwardCount++
			}
		}
	}

	rocks, err := s.rockRepo.ListByTeam(ctx, &team.ID)
	if err != nil {
		return nil, nil, ucerrors.Internal(err)
	}
	for _, r := range rocks {
		if r.Status == entities.RockStatusOffTrack {
			health.OffTrackRocks++
		}
	}

	health.AvgRating = average(stats.ratingSum, stats.ratingN)
	health.TodoCompletionRate = ratio(stats.todosDone, stats.todosTotal)
	return health, stats, nil
}

func average(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func ratio(part, total int) *float64 {
	if total == 0 {
		return nil
	}
	r := float64(part) / float64(total)
	return &r
}
