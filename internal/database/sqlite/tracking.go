package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/repository"
)

type trackingRepository struct {
	db *sql.DB
}

// NewTrackingRepository creates a sqlite-backed tracking record repository for
// single-user deployments
func NewTrackingRepository(db *sql.DB) repository.TrackingRecord {
	return &trackingRepository{db: db}
}

const trackingColumns = `id, created_at, map_name, category, start_level, start_percent,
	end_level, end_percent, duration_minutes, server_rate, gear_rate, manual_book,
	double_rate, total_exp_gained, exp_per_hour`

func (r *trackingRepository) InsertRecord(ctx context.Context, rec *domain.TrackingRecord) error {
	query := `INSERT INTO tracking_records (` + trackingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.CreatedAt.UnixNano(), rec.MapName, string(rec.Category),
		rec.StartLevel, rec.StartPercent, rec.EndLevel, rec.EndPercent,
		rec.DurationMinutes, rec.Modifiers.ServerRate, rec.Modifiers.GearRate,
		rec.Modifiers.ManualBook, rec.Modifiers.DoubleRate,
		rec.TotalExpGained, rec.ExpPerHour)
	if err != nil {
		return fmt.Errorf("%w: insert tracking record: %v", domain.ErrDatabaseError, err)
	}
	return nil
}

func (r *trackingRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.TrackingRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + trackingColumns + ` FROM tracking_records WHERE 1=1`)

	args := []interface{}{}

	if filter.MapContains != "" {
		// sqlite lower() only folds ASCII
		queryBuilder.WriteString(" AND instr(lower(map_name), lower(?)) > 0")
		args = append(args, filter.MapContains)
	}

	if filter.ManualBook != nil {
		if *filter.ManualBook {
			queryBuilder.WriteString(" AND manual_book > 0")
		} else {
			queryBuilder.WriteString(" AND manual_book = 0")
		}
	}

	if filter.DoubleRate != nil {
		queryBuilder.WriteString(" AND double_rate = ?")
		args = append(args, *filter.DoubleRate)
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id")
	if filter.Limit > 0 {
		queryBuilder.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list tracking records: %v", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var records []domain.TrackingRecord
	for rows.Next() {
		var rec domain.TrackingRecord
		var category string
		var createdAt int64
		if err := rows.Scan(
			&rec.ID, &createdAt, &rec.MapName, &category,
			&rec.StartLevel, &rec.StartPercent, &rec.EndLevel, &rec.EndPercent,
			&rec.DurationMinutes, &rec.Modifiers.ServerRate, &rec.Modifiers.GearRate,
			&rec.Modifiers.ManualBook, &rec.Modifiers.DoubleRate,
			&rec.TotalExpGained, &rec.ExpPerHour,
		); err != nil {
			return nil, fmt.Errorf("%w: scan tracking record: %v", domain.ErrDatabaseError, err)
		}
		rec.Category = domain.CharacterCategory(category)
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tracking records: %v", domain.ErrDatabaseError, err)
	}
	return records, nil
}

func (r *trackingRepository) DeleteRecord(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tracking_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete tracking record: %v", domain.ErrDatabaseError, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete tracking record: %v", domain.ErrDatabaseError, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	return nil
}

func (r *trackingRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
