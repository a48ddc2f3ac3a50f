package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/tracker"
)

// MockTrackerService mocks tracker.Service
type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) AccumulatedExp(ctx context.Context, c domain.CharacterCategory, at domain.LevelProgress) (float64, error) {
	args := m.Called(ctx, c, at)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTrackerService) Difference(ctx context.Context, c domain.CharacterCategory, start, end domain.LevelProgress) (float64, error) {
	args := m.Called(ctx, c, start, end)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTrackerService) Resolve(ctx context.Context, c domain.CharacterCategory, start domain.LevelProgress, gained float64) (domain.LevelProgress, error) {
	args := m.Called(ctx, c, start, gained)
	return args.Get(0).(domain.LevelProgress), args.Error(1)
}

func (m *MockTrackerService) HoursToLevel(ctx context.Context, c domain.CharacterCategory, start domain.LevelProgress, target int, perHour float64) (*tracker.Projection, error) {
	args := m.Called(ctx, c, start, target, perHour)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Projection), args.Error(1)
}

func (m *MockTrackerService) Estimate(ctx context.Context, s tracker.Session) (*tracker.Estimate, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Estimate), args.Error(1)
}

func (m *MockTrackerService) SaveRecord(ctx context.Context, s tracker.Session) (*domain.TrackingRecord, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingRecord), args.Error(1)
}

func (m *MockTrackerService) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingRecord), args.Error(1)
}

func (m *MockTrackerService) DeleteRecord(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
