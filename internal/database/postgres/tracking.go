package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/repository"
)

type trackingRepository struct {
	db *pgxpool.Pool
}

// NewTrackingRepository creates a new PostgreSQL tracking record repository
func NewTrackingRepository(db *pgxpool.Pool) repository.TrackingRecord {
	return &trackingRepository{db: db}
}

const trackingColumns = `id, created_at, map_name, category, start_level, start_percent,
	end_level, end_percent, duration_minutes, server_rate, gear_rate, manual_book,
	double_rate, total_exp_gained, exp_per_hour`

// InsertRecord stores an immutable snapshot
func (r *trackingRepository) InsertRecord(ctx context.Context, rec *domain.TrackingRecord) error {
	query := `INSERT INTO tracking_records (` + trackingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.CreatedAt, rec.MapName, string(rec.Category),
		rec.StartLevel, rec.StartPercent, rec.EndLevel, rec.EndPercent,
		rec.DurationMinutes, rec.Modifiers.ServerRate, rec.Modifiers.GearRate,
		rec.Modifiers.ManualBook, rec.Modifiers.DoubleRate,
		rec.TotalExpGained, rec.ExpPerHour)
	if err != nil {
		return fmt.Errorf("%w: insert tracking record: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

// ListRecords retrieves records based on filter criteria, newest first
func (r *trackingRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + trackingColumns + ` FROM tracking_records WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.MapContains != "" {
		fmt.Fprintf(&queryBuilder, " AND map_name ILIKE $%d", argNum)
		args = append(args, "%"+escapeLike(filter.MapContains)+"%")
		argNum++
	}

	if filter.ManualBook != nil {
		if *filter.ManualBook {
			queryBuilder.WriteString(" AND manual_book > 0")
		} else {
			queryBuilder.WriteString(" AND manual_book = 0")
		}
	}

	if filter.DoubleRate != nil {
		fmt.Fprintf(&queryBuilder, " AND double_rate = $%d", argNum)
		args = append(args, *filter.DoubleRate)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id")
	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list tracking records: %v", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("%w: scan tracking records: %v", domain.ErrDatabaseError, err)
	}
	return records, nil
}

func scanRecord(row pgx.CollectableRow) (domain.TrackingRecord, error) {
	var rec domain.TrackingRecord
	var category string
	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.MapName, &category,
		&rec.StartLevel, &rec.StartPercent, &rec.EndLevel, &rec.EndPercent,
		&rec.DurationMinutes, &rec.Modifiers.ServerRate, &rec.Modifiers.GearRate,
		&rec.Modifiers.ManualBook, &rec.Modifiers.DoubleRate,
		&rec.TotalExpGained, &rec.ExpPerHour)
	rec.Category = domain.CharacterCategory(category)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, err
}

// DeleteRecord removes one record by id
func (r *trackingRepository) DeleteRecord(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tracking_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: delete tracking record: %v", domain.ErrDatabaseError, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	return nil
}

// Ping checks connectivity
func (r *trackingRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
