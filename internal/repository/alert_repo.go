package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodsafety/internal/models"
)

type AlertSQLite struct {
	db *sql.DB
}

func NewAlertSQLite(db *sql.DB) *AlertSQLite { return &AlertSQLite{db: db} }

var _ AlertRepo = (*AlertSQLite)(nil)

const (
	alertColumns = `a.id, a.temperature_record_id, a.type, a.danger, a.resolved,
		a.corrective_action, a.corrected_temperature, a.resolved_by, a.resolved_at, a.created_at`

	selectAlertByIDSQL = `
		SELECT a.id, a.temperature_record_id, a.type, a.danger, a.resolved,
		a.corrective_action, a.corrected_temperature, a.resolved_by, a.resolved_at, a.created_at
		FROM alerts a WHERE a.id = ?
	`

	// resolved=0 guard makes resolution a compare-and-swap: two concurrent
	// resolvers cannot both win.
	resolveAlertSQL = `
		UPDATE alerts
		SET resolved = 1, corrective_action = ?, corrected_temperature = ?, resolved_by = ?, resolved_at = ?
		WHERE id = ? AND resolved = 0
	`

	alertJoins = `
		FROM alerts a
		JOIN temperature_records r ON r.id = a.temperature_record_id
		JOIN foods f ON f.id = r.food_id
		JOIN sectors s ON s.id = f.sector_id
	`
)

// scanAlert reads the alert columns shared by GetByID and List.
func scanAlert(scan func(dest ...any) error, a *models.Alert, extra ...any) error {
	var (
		action    sql.NullString
		corrected sql.NullFloat64
		byID      sql.NullString
		at        sql.NullTime
	)
	dest := []any{
		&a.ID, &a.TemperatureRecordID, &a.Type, &a.Danger, &a.Resolved,
		&action, &corrected, &byID, &at, &a.CreatedAt,
	}
	dest = append(dest, extra...)
	if err := scan(dest...); err != nil {
		return err
	}
	if action.Valid {
		a.CorrectiveAction = action.String
	}
	if corrected.Valid {
		v := corrected.Float64
		a.CorrectedTemperature = &v
	}
	if byID.Valid {
		a.ResolvedByID = byID.String
	}
	if at.Valid {
		t := at.Time.UTC()
		a.ResolvedAt = &t
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return nil
}

// GetByID fetches an alert by id. Returns (nil, nil) if not found.
func (r *AlertSQLite) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	row := r.db.QueryRowContext(ctx, selectAlertByIDSQL, id)

	var a models.Alert
	if err := scanAlert(row.Scan, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select alert %q: %w", id, err)
	}
	return &a, nil
}

// buildAlertWhere translates an AlertQuery into WHERE conditions and args.
func buildAlertWhere(q AlertQuery) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Resolved != nil {
		conds = append(conds, "a.resolved = ?")
		args = append(args, *q.Resolved)
	}
	if q.Danger != "" {
		conds = append(conds, "a.danger = ?")
		args = append(args, string(q.Danger))
	}
	if q.Type != "" {
		conds = append(conds, "a.type = ?")
		args = append(args, string(q.Type))
	}
	if q.SectorID != "" {
		conds = append(conds, "f.sector_id = ?")
		args = append(args, q.SectorID)
	}
	if q.FoodID != "" {
		conds = append(conds, "f.id = ?")
		args = append(args, q.FoodID)
	}
	if !q.From.IsZero() {
		conds = append(conds, "a.created_at >= ?")
		args = append(args, q.From.UTC())
	}
	if !q.To.IsZero() {
		conds = append(conds, "a.created_at <= ?")
		args = append(args, q.To.UTC())
	}
	return conds, args
}

// List returns alerts joined with their record and food context, newest first.
func (r *AlertSQLite) List(ctx context.Context, q AlertQuery) ([]models.AlertDetail, error) {
	conds, args := buildAlertWhere(q)

	query := `SELECT ` + alertColumns + `, r.temperature, f.temp_min, f.temp_max, f.name, s.name` + alertJoins
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.AlertDetail, 0, 32)
	for rows.Next() {
		var d models.AlertDetail
		if err := scanAlert(rows.Scan, &d.Alert,
			&d.Temperature, &d.TempMin, &d.TempMax, &d.FoodName, &d.SectorName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of alerts matching the query.
func (r *AlertSQLite) Count(ctx context.Context, q AlertQuery) (int, error) {
	conds, args := buildAlertWhere(q)

	query := `SELECT COUNT(*)` + alertJoins
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}

// MarkResolved applies the unresolved->resolved transition. Returns false
// when no unresolved row with the given id matched.
func (r *AlertSQLite) MarkResolved(ctx context.Context, id, correctiveAction string, correctedTemperature float64, resolvedByID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, resolveAlertSQL,
		correctiveAction,
		correctedTemperature,
		resolvedByID,
		at.UTC(),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("resolve alert %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve alert %q rows affected: %w", id, err)
	}
	return n > 0, nil
}
