package workitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/adapter/repository"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/audit"
	ucerrors "github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/usecase/errors"
)

// ScorecardService handles metric definitions and weekly entries.
// Metrics are team-level configuration and carry no meeting gate;
// entries are work items and may only be written while the meeting is
// ACTIVE.
type ScorecardService struct {
	db            *gorm.DB
	scorecardRepo *repository.ScorecardRepository
	meetingRepo   *repository.MeetingRepository
	recorder      *audit.Recorder
	logger        *zap.Logger
}

// NewScorecardService creates a new scorecard service
func NewScorecardService(
	db *gorm.DB,
	scorecardRepo *repository.ScorecardRepository,
	meetingRepo *repository.MeetingRepository,
	recorder *audit.Recorder,
	logger *zap.Logger,
) *ScorecardService {
	return &ScorecardService{
		db:            db,
		scorecardRepo: scorecardRepo,
		meetingRepo:   meetingRepo,
		recorder:      recorder,
		logger:        logger,
	}
}

// CreateMetricInput represents input for creating a metric
type CreateMetricInput struct {
	TeamID uuid.UUID
	Name   string
	Target float64
	Unit   string
}

// CreateMetric defines a new team metric
func (s *ScorecardService) CreateMetric(ctx context.Context, input CreateMetricInput, actor entities.Actor) (*entities.ScorecardMetric, error) {
	var metric *entities.ScorecardMetric
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		metric = &entities.ScorecardMetric{
			Name:   input.Name,
			Target: input.Target,
			Unit:   input.Unit,
			TeamID: input.TeamID,
		}
		if err := s.scorecardRepo.WithTx(tx).CreateMetric(ctx, metric); err != nil {
			return fmt.Errorf("failed to create metric: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionCreate,
			EntityType: "ScorecardMetric",
			EntityID:   metric.ID,
			After:      metric,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return metric, nil
}

// UpdateMetricInput represents the mutable metric fields
type UpdateMetricInput struct {
	Name   *string
	Target *float64
	Unit   *string
}

// UpdateMetric mutates a metric definition. Entry statuses already
// derived against the old target are not recomputed.
func (s *ScorecardService) UpdateMetric(ctx context.Context, id uuid.UUID, input UpdateMetricInput, actor entities.Actor) (*entities.ScorecardMetric, error) {
	var metric *entities.ScorecardMetric
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scorecards := s.scorecardRepo.WithTx(tx)

		found, err := scorecards.FindMetricByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("metric")
			}
			return fmt.Errorf("failed to load metric: %w", err)
		}
		before := *found

		if input.Name != nil {
			found.Name = *input.Name
		}
		if input.Target != nil {
			found.Target = *input.Target
		}
		if input.Unit != nil {
			found.Unit = *input.Unit
		}

		if err := scorecards.SaveMetric(ctx, found); err != nil {
			return fmt.Errorf("failed to save metric: %w", err)
		}

		metric = found
		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "ScorecardMetric",
			EntityID:   found.ID,
			Before:     before,
			After:      found,
			ActorID:    actor.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return metric, nil
}

// ListMetrics retrieves a team's metrics
func (s *ScorecardService) ListMetrics(ctx context.Context, teamID uuid.UUID) ([]*entities.ScorecardMetric, error) {
	metrics, err := s.scorecardRepo.ListMetricsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	return metrics, nil
}

// UpsertEntryInput represents input for writing a scorecard entry
type UpsertEntryInput struct {
	MetricID  uuid.UUID
	MeetingID uuid.UUID
	Actual    float64
}

// UpsertEntry writes a metric's actual for an ACTIVE meeting. The entry
// status is derived from the actual-vs-target ratio here, at write
// time, and stored; reads never recompute it. At most one entry exists
// per (metric, meeting).
func (s *ScorecardService) UpsertEntry(ctx context.Context, input UpsertEntryInput, actor entities.Actor) (*entities.ScorecardEntry, error) {
	var entry *entities.ScorecardEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scorecards := s.scorecardRepo.WithTx(tx)

		if _, err := requireActiveMeeting(ctx, s.meetingRepo.WithTx(tx), input.MeetingID, "add entries"); err != nil {
			return err
		}

		metric, err := scorecards.FindMetricByID(ctx, input.MetricID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ucerrors.NotFound("metric")
			}
			return fmt.Errorf("failed to load metric: %w", err)
		}

		status := entities.DeriveEntryStatus(input.Actual, metric.Target)

		existing, err := scorecards.FindEntryByMetricAndMeeting(ctx, input.MetricID, input.MeetingID)
		switch {
		case err == nil:
			existing.Actual = input.Actual
			existing.Status = status
			if err := scorecards.SaveEntry(ctx, existing); err != nil {
				return fmt.Errorf("failed to update entry: %w", err)
			}
			entry = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry = &entities.ScorecardEntry{
				Actual:    input.Actual,
				Status:    status,
				MetricID:  input.MetricID,
				MeetingID: input.MeetingID,
			}
			if err := scorecards.CreateEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to create entry: %w", err)
			}
		default:
			return fmt.Errorf("failed to load entry: %w", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			Action:     entities.AuditActionUpdate,
			EntityType: "ScorecardEntry",
			EntityID:   entry.ID,
			After:      entry,
			ActorID:    actor.ID,
			MeetingID:  &input.MeetingID,
		})
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntriesByMeeting retrieves a meeting's scorecard entries
func (s *ScorecardService) ListEntriesByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ScorecardEntry, error) {
	entries, err := s.scorecardRepo.ListEntriesByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
