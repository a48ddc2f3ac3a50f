package repository

import (
	"context"

	"github.com/neo84716/ro-data/internal/domain"
)

// TrackingRecord defines the data access interface for saved grinding sessions
type TrackingRecord interface {
	InsertRecord(ctx context.Context, record *domain.TrackingRecord) error
	// ListRecords returns matching records, newest first
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error)
	// DeleteRecord returns domain.ErrRecordNotFound when nothing was removed
	DeleteRecord(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
