package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/logger"
	"github.com/neo84716/ro-data/internal/metrics"
	"github.com/neo84716/ro-data/internal/repository"
)

// Session describes one grinding session as entered by the player
type Session struct {
	Category        domain.CharacterCategory
	Start           domain.LevelProgress
	End             domain.LevelProgress
	DurationMinutes float64
	Modifiers       domain.Modifiers
	MapName         string
}

// Estimate is the derived efficiency of a session
type Estimate struct {
	Gained      float64 `json:"total_exp_gained"`
	PerHour     float64 `json:"exp_per_hour"`
	BasePerHour float64 `json:"base_exp_per_hour"`
	Multiplier  float64 `json:"multiplier"`
}

// Projection is the time needed to reach a level at a given rate
type Projection struct {
	TargetLevel int     `json:"target_level"`
	ExpNeeded   float64 `json:"exp_needed"`
	Hours       float64 `json:"hours"`
}

// Service defines the experience tracker business logic
type Service interface {
	// Table computations
	AccumulatedExp(ctx context.Context, c domain.CharacterCategory, at domain.LevelProgress) (float64, error)
	Difference(ctx context.Context, c domain.CharacterCategory, start, end domain.LevelProgress) (float64, error)
	Resolve(ctx context.Context, c domain.CharacterCategory, start domain.LevelProgress, gained float64) (domain.LevelProgress, error)
	HoursToLevel(ctx context.Context, c domain.CharacterCategory, start domain.LevelProgress, target int, perHour float64) (*Projection, error)

	// Sessions and history
	Estimate(ctx context.Context, s Session) (*Estimate, error)
	SaveRecord(ctx context.Context, s Session) (*domain.TrackingRecord, error)
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

type service struct {
	table Lookup
	repo  repository.TrackingRecord
	now   func() time.Time
}

// NewService creates a new tracker service
func NewService(table Lookup, repo repository.TrackingRecord) Service {
	return &service{
		table: table,
		repo:  repo,
		now:   time.Now,
	}
}

func checkPosition(c domain.CharacterCategory, positions ...domain.LevelProgress) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	for _, p := range positions {
		if p.Level < 1 || p.Level > c.MaxLevel() {
			return fmt.Errorf("%w: level %d outside 1..%d", domain.ErrInvalidInput, p.Level, c.MaxLevel())
		}
		if p.Percent < 0 || p.Percent > 100 {
			return fmt.Errorf("%w: percent %g outside 0..100", domain.ErrInvalidInput, p.Percent)
		}
	}
	return nil
}

func (s *service) AccumulatedExp(ctx context.Context, c domain.CharacterCategory, at domain.LevelProgress) (float64, error) {
	if err := checkPosition(c, at); err != nil {
		return 0, err
	}
	metrics.ExpLookups.WithLabelValues(metrics.OperationAccumulated).Inc()
	return AccumulatedExp(s.table, at.Level, at.Percent, c), nil
}

func (s *service) Difference(ctx context.Context, c domain.CharacterCategory, start, end domain.LevelProgress) (float64, error) {
	if err := checkPosition(c, start, end); err != nil {
		return 0, err
	}
	metrics.ExpLookups.WithLabelValues(metrics.OperationDifference).Inc()
	return ExpDifference(s.table, start, end, c), nil
}

func (s *service) Resolve(ctx context.Context, c domain.CharacterCategory, start domain.LevelProgress, gained float64) (domain.LevelProgress, error) {
	if err := checkPosition(c, start); err != nil {
		return domain.LevelProgress{}, err
	}
	if gained < 0 {
		return domain.LevelProgress{}, fmt.Errorf("%w: gained experience must not be negative", domain.ErrInvalidInput)
	}
	metrics.ExpLookups.WithLabelValues(metrics.OperationResolve).Inc()
	return ResolveFinalLevel(s.table, start, gained, c), nil
}

func (s *service) HoursToLevel(ctx context.Context, c domain.CharacterCategory, start domain.LevelProgress, target int, perHour float64) (*Projection, error) {
	if err := checkPosition(c, start); err != nil {
		return nil, err
	}
	hours, needed, ok := HoursToLevel(s.table, start, target, perHour, c)
	if !ok {
		return nil, fmt.Errorf("%w: level %d is not reachable at %g exp/h", domain.ErrInvalidInput, target, perHour)
	}
	metrics.ExpLookups.WithLabelValues(metrics.OperationProjection).Inc()
	return &Projection{TargetLevel: target, ExpNeeded: needed, Hours: hours}, nil
}

func (s *service) Estimate(ctx context.Context, sess Session) (*Estimate, error) {
	if err := checkPosition(sess.Category, sess.Start, sess.End); err != nil {
		return nil, err
	}
	if sess.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	}
	gained := ExpDifference(s.table, sess.Start, sess.End, sess.Category)
	perHour := ExpPerHour(gained, sess.DurationMinutes, sess.Modifiers)
	return &Estimate{
		Gained:      gained,
		PerHour:     perHour,
		BasePerHour: BaseExpPerHour(perHour, sess.Modifiers),
		Multiplier:  Multiplier(sess.Modifiers),
	}, nil
}

func (s *service) SaveRecord(ctx context.Context, sess Session) (*domain.TrackingRecord, error) {
	log := logger.FromContext(ctx)

	est, err := s.Estimate(ctx, sess)
	if err != nil {
		return nil, err
	}

	mapName := strings.TrimSpace(sess.MapName)
	if mapName == "" {
		mapName = domain.DefaultMapName
	}

	record := &domain.TrackingRecord{
		ID:              uuid.NewString(),
		CreatedAt:       s.now().UTC(),
		MapName:         mapName,
		Category:        sess.Category,
		StartLevel:      sess.Start.Level,
		StartPercent:    sess.Start.Percent,
		EndLevel:        sess.End.Level,
		EndPercent:      sess.End.Percent,
		DurationMinutes: sess.DurationMinutes,
		Modifiers:       sess.Modifiers,
		TotalExpGained:  est.Gained,
		ExpPerHour:      est.PerHour,
	}

	if err := s.repo.InsertRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save tracking record: %w", err)
	}

	metrics.RecordsSaved.Inc()
	log.Info(LogMsgRecordSaved,
		LogFieldRecordID, record.ID,
		LogFieldMap, record.MapName,
		LogFieldGained, record.TotalExpGained,
		LogFieldPerHour, record.ExpPerHour)
	return record, nil
}

func (s *service) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}
	records, err := s.repo.ListRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking records: %w", err)
	}
	return records, nil
}

func (s *service) DeleteRecord(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	if err := s.repo.DeleteRecord(ctx, id); err != nil {
		return err
	}
	metrics.RecordsDeleted.Inc()
	logger.FromContext(ctx).Info(LogMsgRecordDeleted, LogFieldRecordID, id)
	return nil
}
