package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodsafety/internal/metrics"
	"foodsafety/internal/models"
	"foodsafety/internal/repository"
)

// AlertFilter enumerates the recognized alert list filters. Date selects a
// single calendar day and is mutually exclusive with the From/To range.
// Date, From and To name civil days; the service expands them to instants
// in its display location (From opens its day, To closes its day).
type AlertFilter struct {
	Resolved *bool
	Danger   models.AlertDanger
	Type     models.AlertType
	SectorID string
	FoodID   string
	Date     time.Time
	From     time.Time
	To       time.Time
}

// AlertView is an alert decorated for display: signed deviation from the
// nearest safe bound and a localized timestamp.
type AlertView struct {
	models.AlertDetail
	Deviation string `json:"deviation"`
	LocalTime string `json:"local_time"`
}

type AlertService struct {
	users   repository.UserRepo
	alerts  repository.AlertRepo
	loc     *time.Location
	metrics *metrics.MonitorMetrics
}

func NewAlertService(users repository.UserRepo, alerts repository.AlertRepo, loc *time.Location, m *metrics.MonitorMetrics) *AlertService {
	return &AlertService{users: users, alerts: alerts, loc: loc, metrics: m}
}

// Resolve applies the one allowed alert transition: unresolved -> resolved.
// Re-resolving is rejected with ErrAlertAlreadyResolved; the conditional
// update in the repository keeps concurrent resolvers from both winning.
func (s *AlertService) Resolve(ctx context.Context, in ResolveInput) (models.Alert, error) {
	if strings.TrimSpace(in.CorrectiveAction) == "" {
		return models.Alert{}, ErrEmptyCorrectiveAction
	}

	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return models.Alert{}, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return models.Alert{}, ErrUserNotFound
	}

	alert, err := s.alerts.GetByID(ctx, in.AlertID)
	if err != nil {
		return models.Alert{}, fmt.Errorf("load alert: %w", err)
	}
	if alert == nil {
		return models.Alert{}, ErrAlertNotFound
	}
	if alert.Resolved {
		return models.Alert{}, ErrAlertAlreadyResolved
	}

	resolved, err := s.alerts.MarkResolved(ctx, in.AlertID, in.CorrectiveAction, in.CorrectedTemperature, in.UserID, time.Now().UTC())
	if err != nil {
		return models.Alert{}, err
	}
	if !resolved {
		// Row existed a moment ago but the conditional update matched
		// nothing: a concurrent resolver got there first.
		return models.Alert{}, ErrAlertAlreadyResolved
	}

	updated, err := s.alerts.GetByID(ctx, in.AlertID)
	if err != nil {
		return models.Alert{}, fmt.Errorf("reload alert: %w", err)
	}
	if updated == nil {
		return models.Alert{}, ErrAlertNotFound
	}

	s.metrics.CountAlertResolved()
	return *updated, nil
}

// Get fetches a single alert by id.
func (s *AlertService) Get(ctx context.Context, id string) (models.Alert, error) {
	alert, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}
	if alert == nil {
		return models.Alert{}, ErrAlertNotFound
	}
	return *alert, nil
}

// validateFilter rejects contradictory or malformed filter combinations.
func validateFilter(f AlertFilter) error {
	if !f.Date.IsZero() && (!f.From.IsZero() || !f.To.IsZero()) {
		return fmt.Errorf("%w: date and from/to range are mutually exclusive", ErrInvalidFilter)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return fmt.Errorf("%w: from must be <= to", ErrInvalidFilter)
	}
	switch f.Danger {
	case "", models.DangerAlert, models.DangerCritical:
	default:
		return fmt.Errorf("%w: unknown danger %q", ErrInvalidFilter, f.Danger)
	}
	switch f.Type {
	case "", models.AlertBelowMin, models.AlertAboveMax, models.AlertNextMin, models.AlertNextMax:
	default:
		return fmt.Errorf("%w: unknown alert type %q", ErrInvalidFilter, f.Type)
	}
	return nil
}

// List returns alerts matching the filter, decorated for display.
func (s *AlertService) List(ctx context.Context, f AlertFilter) ([]AlertView, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}

	q := repository.AlertQuery{
		Resolved: f.Resolved,
		Danger:   f.Danger,
		Type:     f.Type,
		SectorID: f.SectorID,
		FoodID:   f.FoodID,
	}
	if !f.From.IsZero() {
		q.From, _ = dayBounds(f.From, s.loc)
	}
	if !f.To.IsZero() {
		_, q.To = dayBounds(f.To, s.loc)
	}
	if !f.Date.IsZero() {
		q.From, q.To = dayBounds(f.Date, s.loc)
	}

	details, err := s.alerts.List(ctx, q)
	if err != nil {
		return nil, err
	}

	views := make([]AlertView, 0, len(details))
	for _, d := range details {
		views = append(views, AlertView{
			AlertDetail: d,
			Deviation:   fmt.Sprintf("%+.1f", Deviation(d.Temperature, d.TempMin, d.TempMax)),
			LocalTime:   formatLocal(d.CreatedAt, s.loc),
		})
	}
	return views, nil
}

// Resolved lists all resolved alerts.
func (s *AlertService) Resolved(ctx context.Context) ([]AlertView, error) {
	resolved := true
	return s.List(ctx, AlertFilter{Resolved: &resolved})
}

// Unresolved lists all open alerts.
func (s *AlertService) Unresolved(ctx context.Context) ([]AlertView, error) {
	resolved := false
	return s.List(ctx, AlertFilter{Resolved: &resolved})
}
