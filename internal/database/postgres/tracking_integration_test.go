package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/neo84716/ro-data/internal/database"
	"github.com/neo84716/ro-data/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) func() {
	// Handle potential panics from testcontainers when docker is missing
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}

	pool, err := database.NewPool(ctx, connStr, 5, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return terminate
	}
	if err := database.MigratePool(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return terminate
	}
	testPool = pool
	return terminate
}

func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	_, err := testPool.Exec(context.Background(), "TRUNCATE tracking_records")
	require.NoError(t, err)
	return testPool
}

func newRecord(mapName string, manual float64, double bool, at time.Time) *domain.TrackingRecord {
	return &domain.TrackingRecord{
		ID:              uuid.NewString(),
		CreatedAt:       at,
		MapName:         mapName,
		Category:        domain.CategoryDoram,
		StartLevel:      180,
		StartPercent:    42.5,
		EndLevel:        181,
		EndPercent:      3,
		DurationMinutes: 45,
		Modifiers:       domain.Modifiers{ServerRate: 200, GearRate: 10, ManualBook: manual, DoubleRate: double},
		TotalExpGained:  987654321,
		ExpPerHour:      1316872428,
	}
}

func TestTrackingRepository_Integration(t *testing.T) {
	repo := NewTrackingRepository(requirePool(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	r1 := newRecord("Glast Heim 100%_done", 0, false, base)
	r2 := newRecord("Thor Volcano", 200, true, base.Add(time.Minute))
	require.NoError(t, repo.InsertRecord(ctx, r1))
	require.NoError(t, repo.InsertRecord(ctx, r2))

	all, err := repo.ListRecords(ctx, domain.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, r2.ID, all[0].ID)
	assert.Equal(t, *r1, all[1])

	escaped, err := repo.ListRecords(ctx, domain.RecordFilter{MapContains: "100%_"})
	require.NoError(t, err)
	require.Len(t, escaped, 1)
	assert.Equal(t, r1.ID, escaped[0].ID)

	double := true
	onlyDouble, err := repo.ListRecords(ctx, domain.RecordFilter{DoubleRate: &double})
	require.NoError(t, err)
	require.Len(t, onlyDouble, 1)
	assert.Equal(t, r2.ID, onlyDouble[0].ID)

	require.NoError(t, repo.DeleteRecord(ctx, r1.ID))
	assert.ErrorIs(t, repo.DeleteRecord(ctx, r1.ID), domain.ErrRecordNotFound)
	assert.NoError(t, repo.Ping(ctx))
}
