package service

import (
	"context"
	"errors"
	"time"

	"foodsafety/internal/metrics"
	"foodsafety/internal/models"
	"foodsafety/internal/repository"
)

// Domain errors surfaced to callers. The HTTP layer maps them to status codes.
var (
	ErrFoodNotFound          = errors.New("food not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrAlertNotFound         = errors.New("alert not found")
	ErrAlertAlreadyResolved  = errors.New("alert already resolved")
	ErrEmptyCorrectiveAction = errors.New("corrective action must not be empty")
	ErrInvalidFilter         = errors.New("invalid filter")
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string, role models.Role) (string, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, models.Role, error)
}

// Records owns the temperature-record lifecycle: submitting readings
// (which may raise an alert) and listing a user's records for a day.
type Records interface {
	SubmitReading(ctx context.Context, in ReadingInput) (models.TemperatureRecord, error)
	ListForDay(ctx context.Context, userID string, day time.Time) ([]models.TemperatureRecord, error)
}

// Alerts exposes the alert read paths and the resolution transition.
type Alerts interface {
	Resolve(ctx context.Context, in ResolveInput) (models.Alert, error)
	Get(ctx context.Context, id string) (models.Alert, error)
	List(ctx context.Context, f AlertFilter) ([]AlertView, error)
	Resolved(ctx context.Context) ([]AlertView, error)
	Unresolved(ctx context.Context) ([]AlertView, error)
}

// Dashboard aggregates per-day record and alert counts.
type Dashboard interface {
	Summary(ctx context.Context, day time.Time) (DaySummary, error)
}

// ReadingInput is a worker's submitted temperature reading.
type ReadingInput struct {
	FoodID      string
	Temperature float64
	UserID      string
}

// ResolveInput is a supervisor's corrective action closing an alert.
type ResolveInput struct {
	AlertID              string
	CorrectiveAction     string
	CorrectedTemperature float64
	UserID               string
}

// Config carries cross-cutting settings for the service layer.
// Location replaces ambient global timezone state: every formatting and
// day-boundary computation receives it explicitly.
type Config struct {
	SigningKey string
	Location   *time.Location
}

// Service aggregates all sub-services.
type Service struct {
	Records
	Alerts
	Dashboard
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, m *metrics.MonitorMetrics) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		Records:       NewRecordingService(repos.Foods, repos.Users, repos.Records, loc, m),
		Alerts:        NewAlertService(repos.Users, repos.Alerts, loc, m),
		Dashboard:     NewDashboardService(repos.Records, repos.Alerts, loc),
		Authorization: NewAuthService(repos.Users, cfg.SigningKey),
	}
}
