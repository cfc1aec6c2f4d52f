package repository

import (
	"context"
	"database/sql"
	"time"

	"foodsafety/internal/models"
)

// FoodRepo reads food configuration. Foods are managed elsewhere; the
// monitoring core only needs lookups.
type FoodRepo interface {
	GetByID(ctx context.Context, id string) (*models.Food, error)
}

type UserRepo interface {
	Create(ctx context.Context, username, passwordHash string, role models.Role) (string, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// RecordRepo persists temperature records. CreateWithAlert writes the record
// and its derived alert (when non-nil) in one transaction.
type RecordRepo interface {
	CreateWithAlert(ctx context.Context, rec models.TemperatureRecord, alert *models.Alert) (models.TemperatureRecord, error)
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]models.TemperatureRecord, error)
	CountByRange(ctx context.Context, from, to time.Time) (int, error)
}

// AlertRepo reads alerts and applies the single resolved transition.
type AlertRepo interface {
	GetByID(ctx context.Context, id string) (*models.Alert, error)
	List(ctx context.Context, q AlertQuery) ([]models.AlertDetail, error)
	Count(ctx context.Context, q AlertQuery) (int, error)
	// MarkResolved is a conditional update (only unresolved rows match).
	// Returns false when the row exists but was already resolved.
	MarkResolved(ctx context.Context, id, correctiveAction string, correctedTemperature float64, resolvedByID string, at time.Time) (bool, error)
}

// AlertQuery enumerates the recognized alert filters. Zero values mean
// "no constraint"; From/To bound the alert creation time inclusively.
type AlertQuery struct {
	Resolved *bool
	Danger   models.AlertDanger
	Type     models.AlertType
	SectorID string
	FoodID   string
	From     time.Time
	To       time.Time
}

type Repository struct {
	Foods   FoodRepo
	Users   UserRepo
	Records RecordRepo
	Alerts  AlertRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Foods:   NewFoodSQLite(db),
		Users:   NewUserSQLite(db),
		Records: NewRecordSQLite(db),
		Alerts:  NewAlertSQLite(db),
	}
}
