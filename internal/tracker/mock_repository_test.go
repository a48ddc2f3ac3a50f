package tracker

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/neo84716/ro-data/internal/domain"
)

// MockRepository is a testify mock of repository.TrackingRecord
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertRecord(ctx context.Context, record *domain.TrackingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingRecord), args.Error(1)
}

func (m *MockRepository) DeleteRecord(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
