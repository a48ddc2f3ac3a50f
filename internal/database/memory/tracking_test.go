package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo84716/ro-data/internal/domain"
)

func record(mapName string, manual float64, double bool, at time.Time) *domain.TrackingRecord {
	return &domain.TrackingRecord{
		ID:              uuid.NewString(),
		CreatedAt:       at,
		MapName:         mapName,
		Category:        domain.CategoryPostAdvancement,
		StartLevel:      150,
		EndLevel:        151,
		DurationMinutes: 60,
		Modifiers:       domain.Modifiers{ServerRate: 100, ManualBook: manual, DoubleRate: double},
		TotalExpGained:  1000,
		ExpPerHour:      1000,
	}
}

func boolPtr(b bool) *bool { return &b }

func TestTrackingRepository_Filters(t *testing.T) {
	repo := NewTrackingRepository()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	r1 := record("Glast Heim Churchyard", 0, false, base)
	r2 := record("Nidhogg's Nest", 100, true, base.Add(time.Hour))
	r3 := record("glast heim prison", 50, false, base.Add(2*time.Hour))
	r4 := record("ÉCLAGE Interior", 0, false, base.Add(3*time.Hour))
	for _, r := range []*domain.TrackingRecord{r1, r2, r3, r4} {
		require.NoError(t, repo.InsertRecord(ctx, r))
	}

	tests := []struct {
		name   string
		filter domain.RecordFilter
		want   []string
	}{
		{"all newest first", domain.RecordFilter{}, []string{r4.ID, r3.ID, r2.ID, r1.ID}},
		{"map substring ignores case", domain.RecordFilter{MapContains: "GLAST"}, []string{r3.ID, r1.ID}},
		{"map folds non-ascii case", domain.RecordFilter{MapContains: "éclage"}, []string{r4.ID}},
		{"manual book used", domain.RecordFilter{ManualBook: boolPtr(true)}, []string{r3.ID, r2.ID}},
		{"double rate off", domain.RecordFilter{DoubleRate: boolPtr(false)}, []string{r4.ID, r3.ID, r1.ID}},
		{"limit", domain.RecordFilter{Limit: 2}, []string{r4.ID, r3.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListRecords(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTrackingRepository_StoresCopies(t *testing.T) {
	repo := NewTrackingRepository()
	ctx := context.Background()

	r := record("Odin Temple", 0, false, time.Now().UTC())
	require.NoError(t, repo.InsertRecord(ctx, r))
	r.MapName = "changed"

	all, err := repo.ListRecords(ctx, domain.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Odin Temple", all[0].MapName)
}

func TestTrackingRepository_DeleteAndDuplicate(t *testing.T) {
	repo := NewTrackingRepository()
	ctx := context.Background()

	r := record("Abyss Lake", 0, false, time.Now().UTC())
	require.NoError(t, repo.InsertRecord(ctx, r))
	assert.ErrorIs(t, repo.InsertRecord(ctx, r), domain.ErrDatabaseError)

	require.NoError(t, repo.DeleteRecord(ctx, r.ID))
	assert.ErrorIs(t, repo.DeleteRecord(ctx, r.ID), domain.ErrRecordNotFound)
}

func TestTrackingRepository_Ping(t *testing.T) {
	repo := NewTrackingRepository()
	assert.NoError(t, repo.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
