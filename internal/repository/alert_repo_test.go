package repository

import (
	"regexp"
	"testing"
	"time"

	"foodsafety/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var alertRowColumns = []string{
	"id", "temperature_record_id", "type", "danger", "resolved",
	"corrective_action", "corrected_temperature", "resolved_by", "resolved_at", "created_at",
}

func TestAlertGetByID_Unresolved(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(alertRowColumns).
		AddRow("a-1", "rec-1", "BELOW_MIN", "CRITICAL", false, nil, nil, nil, nil, created)

	mock.ExpectQuery(regexp.QuoteMeta(selectAlertByIDSQL)).
		WithArgs("a-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(ctx(t), "a-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected alert")
	}
	if got.Type != models.AlertBelowMin || got.Danger != models.DangerCritical || got.Resolved {
		t.Fatalf("unexpected alert: %+v", got)
	}
	if got.CorrectiveAction != "" || got.CorrectedTemperature != nil || got.ResolvedByID != "" || got.ResolvedAt != nil {
		t.Fatalf("unresolved alert must carry no resolution fields: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAlertGetByID_ResolvedFields(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	resolvedAt := created.Add(time.Hour)
	rows := sqlmock.NewRows(alertRowColumns).
		AddRow("a-1", "rec-1", "ABOVE_MAX", "CRITICAL", true, "moved stock", 4.5, "user-2", resolvedAt, created)

	mock.ExpectQuery(regexp.QuoteMeta(selectAlertByIDSQL)).
		WithArgs("a-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(ctx(t), "a-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Resolved || got.CorrectiveAction != "moved stock" || got.ResolvedByID != "user-2" {
		t.Fatalf("unexpected alert: %+v", got)
	}
	if got.CorrectedTemperature == nil || *got.CorrectedTemperature != 4.5 {
		t.Fatalf("corrected temperature = %v", got.CorrectedTemperature)
	}
	if got.ResolvedAt == nil || !got.ResolvedAt.Equal(resolvedAt) {
		t.Fatalf("resolvedAt = %v, want %v", got.ResolvedAt, resolvedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAlertGetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectAlertByIDSQL)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(alertRowColumns))

	got, err := repo.GetByID(ctx(t), "nope")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for missing alert, got %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestMarkResolved_MatchesUnresolvedRow(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	at := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(resolveAlertSQL)).
		WithArgs("moved stock", 4.5, "user-2", at, "a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkResolved(ctx(t), "a-1", "moved stock", 4.5, "user-2", at)
	if err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}
	if !ok {
		t.Fatal("want true for matched row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestMarkResolved_AlreadyResolvedMatchesNothing(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(resolveAlertSQL)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.MarkResolved(ctx(t), "a-1", "fix", 4, "user-2", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}
	if ok {
		t.Fatal("resolved row must not match the conditional update")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAlertList_WithFiltersBuildsWhereClause(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	resolved := false
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	q := AlertQuery{
		Resolved: &resolved,
		Danger:   models.DangerCritical,
		SectorID: "sector-1",
		From:     from,
		To:       to,
	}

	query := `SELECT ` + alertColumns + `, r.temperature, f.temp_min, f.temp_max, f.name, s.name` + alertJoins +
		" WHERE a.resolved = ? AND a.danger = ? AND f.sector_id = ? AND a.created_at >= ? AND a.created_at <= ? ORDER BY a.created_at DESC"

	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(append(alertRowColumns, "temperature", "temp_min", "temp_max", "name", "s_name")).
		AddRow("a-1", "rec-1", "ABOVE_MAX", "CRITICAL", false, nil, nil, nil, nil, created, 9.0, 2.0, 8.0, "Chicken", "Kitchen")

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(false, "CRITICAL", "sector-1", from, to).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 alert, got %d", len(got))
	}
	d := got[0]
	if d.Temperature != 9 || d.TempMin != 2 || d.TempMax != 8 || d.FoodName != "Chicken" || d.SectorName != "Kitchen" {
		t.Fatalf("unexpected detail: %+v", d)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAlertCount(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewAlertSQLite(db)

	query := `SELECT COUNT(*)` + alertJoins + " WHERE a.danger = ?"
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("CRITICAL").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(ctx(t), AlertQuery{Danger: models.DangerCritical})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
