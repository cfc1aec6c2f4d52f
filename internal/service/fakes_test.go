package service

import (
	"context"
	"time"

	"foodsafety/internal/models"
	"foodsafety/internal/repository"
)

// Hand-written fakes for the repository interfaces, shared by the service tests.

type fakeFoodRepo struct {
	foods map[string]models.Food
	err   error
}

func (f *fakeFoodRepo) GetByID(ctx context.Context, id string) (*models.Food, error) {
	if f.err != nil {
		return nil, f.err
	}
	food, ok := f.foods[id]
	if !ok {
		return nil, nil
	}
	return &food, nil
}

type fakeUserRepo struct {
	ids         map[string]bool
	byUsername  map[string]models.User
	createdID   string
	createErr   error
	existsErr   error
	lastCreated struct {
		username string
		hash     string
		role     models.Role
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, username, passwordHash string, role models.Role) (string, error) {
	f.lastCreated.username = username
	f.lastCreated.hash = passwordHash
	f.lastCreated.role = role
	return f.createdID, f.createErr
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.ids[id], nil
}

type fakeRecordRepo struct {
	createErr    error
	createCalls  int
	createdRec   models.TemperatureRecord
	createdAlert *models.Alert

	listResp []models.TemperatureRecord
	listErr  error
	lastFrom time.Time
	lastTo   time.Time

	countResp int
	countErr  error
}

func (f *fakeRecordRepo) CreateWithAlert(ctx context.Context, rec models.TemperatureRecord, alert *models.Alert) (models.TemperatureRecord, error) {
	f.createCalls++
	if f.createErr != nil {
		return models.TemperatureRecord{}, f.createErr
	}
	rec.ID = "rec-1"
	rec.CreatedAt = time.Now().UTC()
	if alert != nil {
		alert.ID = "alert-1"
		alert.TemperatureRecordID = rec.ID
		alert.CreatedAt = rec.CreatedAt
	}
	f.createdRec = rec
	f.createdAlert = alert
	return rec, nil
}

func (f *fakeRecordRepo) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]models.TemperatureRecord, error) {
	f.lastFrom = from
	f.lastTo = to
	return f.listResp, f.listErr
}

func (f *fakeRecordRepo) CountByRange(ctx context.Context, from, to time.Time) (int, error) {
	return f.countResp, f.countErr
}

type fakeAlertRepo struct {
	alerts map[string]*models.Alert

	// forceMarkMiss makes MarkResolved report zero matched rows even for an
	// unresolved alert, simulating a concurrent resolver winning the race.
	forceMarkMiss bool
	markErr       error

	listResp  []models.AlertDetail
	listErr   error
	lastQuery repository.AlertQuery

	countFn  func(q repository.AlertQuery) int
	countErr error
}

func (f *fakeAlertRepo) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	a, ok := f.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAlertRepo) List(ctx context.Context, q repository.AlertQuery) ([]models.AlertDetail, error) {
	f.lastQuery = q
	return f.listResp, f.listErr
}

func (f *fakeAlertRepo) Count(ctx context.Context, q repository.AlertQuery) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(q), nil
}

func (f *fakeAlertRepo) MarkResolved(ctx context.Context, id, correctiveAction string, correctedTemperature float64, resolvedByID string, at time.Time) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	a, ok := f.alerts[id]
	if !ok || a.Resolved || f.forceMarkMiss {
		return false, nil
	}
	a.Resolved = true
	a.CorrectiveAction = correctiveAction
	a.CorrectedTemperature = &correctedTemperature
	a.ResolvedByID = resolvedByID
	resolvedAt := at
	a.ResolvedAt = &resolvedAt
	return true, nil
}
