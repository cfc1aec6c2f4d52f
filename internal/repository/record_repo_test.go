package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"foodsafety/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestCreateWithAlert_CommitsRecordAndAlertTogether(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRecordSQL)).
		WithArgs(sqlmock.AnyArg(), "food-1", "user-1", 9.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertAlertSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "ABOVE_MAX", "CRITICAL", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	alert := &models.Alert{Type: models.AlertAboveMax, Danger: models.DangerCritical}
	rec, err := repo.CreateWithAlert(ctx(t), models.TemperatureRecord{
		FoodID:      "food-1",
		UserID:      "user-1",
		Temperature: 9,
	}, alert)
	if err != nil {
		t.Fatalf("CreateWithAlert: %v", err)
	}

	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Fatalf("generated fields not filled: %+v", rec)
	}
	if alert.ID == "" || alert.TemperatureRecordID != rec.ID {
		t.Fatalf("alert must link its record: %+v", alert)
	}
	if !alert.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("alert and record timestamps differ: %v vs %v", alert.CreatedAt, rec.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCreateWithAlert_NoAlertInsertsOnlyRecord(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRecordSQL)).
		WithArgs(sqlmock.AnyArg(), "food-1", "user-1", 5.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if _, err := repo.CreateWithAlert(ctx(t), models.TemperatureRecord{
		FoodID:      "food-1",
		UserID:      "user-1",
		Temperature: 5,
	}, nil); err != nil {
		t.Fatalf("CreateWithAlert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCreateWithAlert_AlertInsertFailureRollsBackRecord(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	// The record insert succeeds, the alert insert fails: nothing may
	// survive, so the transaction must roll back instead of committing.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRecordSQL)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertAlertSQL)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateWithAlert(ctx(t), models.TemperatureRecord{
		FoodID:      "food-1",
		UserID:      "user-1",
		Temperature: 9,
	}, &models.Alert{Type: models.AlertAboveMax, Danger: models.DangerCritical})
	if err == nil {
		t.Fatal("expected error when the alert insert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCreateWithAlert_RecordInsertFailureRollsBack(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRecordSQL)).
		WillReturnError(errors.New("down"))
	mock.ExpectRollback()

	if _, err := repo.CreateWithAlert(ctx(t), models.TemperatureRecord{
		FoodID: "food-1", UserID: "user-1", Temperature: 5,
	}, nil); err == nil {
		t.Fatal("expected error when the record insert fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestListByUser_ScansRows(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	from := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Nanosecond)
	created := from.Add(10 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "food_id", "user_id", "temperature", "created_at"}).
		AddRow("rec-2", "food-1", "user-1", 9.0, created.Add(time.Hour)).
		AddRow("rec-1", "food-1", "user-1", 5.0, created)

	mock.ExpectQuery(regexp.QuoteMeta(selectRecordsByUserSQL)).
		WithArgs("user-1", from, to).
		WillReturnRows(rows)

	got, err := repo.ListByUser(ctx(t), "user-1", from, to)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 || got[0].ID != "rec-2" || got[1].ID != "rec-1" {
		t.Fatalf("unexpected records: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCountByRange(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	from := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Nanosecond)

	mock.ExpectQuery(regexp.QuoteMeta(countRecordsByRangeSQL)).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountByRange(ctx(t), from, to)
	if err != nil {
		t.Fatalf("CountByRange: %v", err)
	}
	if n != 7 {
		t.Fatalf("count = %d, want 7", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
