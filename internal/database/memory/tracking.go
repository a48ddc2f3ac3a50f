package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/repository"
)

// trackingRepository keeps records in process memory. Nothing survives a
// restart; it backs DB_DRIVER=memory for throwaway runs and demos.
type trackingRepository struct {
	mu      sync.RWMutex
	records map[string]domain.TrackingRecord
}

// NewTrackingRepository creates an empty in-memory record store
func NewTrackingRepository() repository.TrackingRecord {
	return &trackingRepository{records: make(map[string]domain.TrackingRecord)}
}

func (r *trackingRepository) InsertRecord(ctx context.Context, rec *domain.TrackingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; exists {
		return fmt.Errorf("%w: duplicate tracking record id %s", domain.ErrDatabaseError, rec.ID)
	}
	r.records[rec.ID] = *rec
	return nil
}

// ListRecords applies the filter in Go. Map matching folds full Unicode case,
// unlike sqlite's ASCII-only lower().
func (r *trackingRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error) {
	r.mu.RLock()
	var out []domain.TrackingRecord
	for _, rec := range r.records {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *trackingRepository) DeleteRecord(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	delete(r.records, id)
	return nil
}

func (r *trackingRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
