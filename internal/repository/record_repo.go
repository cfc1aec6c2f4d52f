package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foodsafety/internal/models"

	"github.com/google/uuid"
)

type RecordSQLite struct {
	db *sql.DB
}

func NewRecordSQLite(db *sql.DB) *RecordSQLite { return &RecordSQLite{db: db} }

var _ RecordRepo = (*RecordSQLite)(nil)

const (
	insertRecordSQL = `
		INSERT INTO temperature_records (id, food_id, user_id, temperature, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	insertAlertSQL = `
		INSERT INTO alerts (id, temperature_record_id, type, danger, resolved, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`

	selectRecordsByUserSQL = `
		SELECT id, food_id, user_id, temperature, created_at
		FROM temperature_records
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC
	`

	countRecordsByRangeSQL = `
		SELECT COUNT(*) FROM temperature_records WHERE created_at >= ? AND created_at <= ?
	`
)

// CreateWithAlert inserts the record and, when alert is non-nil, its derived
// alert inside one transaction. Either both rows commit or neither does; a
// record must never appear without its entailed alert.
// Generated fields (ids, created_at) are filled in when empty.
func (r *RecordSQLite) CreateWithAlert(ctx context.Context, rec models.TemperatureRecord, alert *models.Alert) (models.TemperatureRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	} else {
		rec.CreatedAt = rec.CreatedAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.TemperatureRecord{}, fmt.Errorf("begin record transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		rec.FoodID,
		rec.UserID,
		rec.Temperature,
		rec.CreatedAt,
	); err != nil {
		return models.TemperatureRecord{}, fmt.Errorf("insert temperature record: %w", err)
	}

	if alert != nil {
		if alert.ID == "" {
			alert.ID = uuid.NewString()
		}
		alert.TemperatureRecordID = rec.ID
		alert.CreatedAt = rec.CreatedAt

		if _, err := tx.ExecContext(ctx, insertAlertSQL,
			alert.ID,
			alert.TemperatureRecordID,
			string(alert.Type),
			string(alert.Danger),
			alert.CreatedAt,
		); err != nil {
			return models.TemperatureRecord{}, fmt.Errorf("insert alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.TemperatureRecord{}, fmt.Errorf("commit record transaction: %w", err)
	}
	return rec, nil
}

// ListByUser returns a user's records with created_at in [from, to], newest first.
func (r *RecordSQLite) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]models.TemperatureRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordsByUserSQL, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TemperatureRecord, 0, 32)
	for rows.Next() {
		var rec models.TemperatureRecord
		if err := rows.Scan(&rec.ID, &rec.FoodID, &rec.UserID, &rec.Temperature, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByRange counts records with created_at in [from, to].
func (r *RecordSQLite) CountByRange(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countRecordsByRangeSQL, from.UTC(), to.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count temperature records: %w", err)
	}
	return n, nil
}
