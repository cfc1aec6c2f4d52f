package service

import (
	"context"
	"fmt"
	"time"

	"foodsafety/internal/metrics"
	"foodsafety/internal/models"
	"foodsafety/internal/repository"
)

// RecordingService is the alert lifecycle's entry point: it turns a
// submitted reading into a temperature record plus, when the classifier
// fires, an unresolved alert committed in the same transaction.
type RecordingService struct {
	foods   repository.FoodRepo
	users   repository.UserRepo
	records repository.RecordRepo
	loc     *time.Location
	metrics *metrics.MonitorMetrics
}

func NewRecordingService(foods repository.FoodRepo, users repository.UserRepo, records repository.RecordRepo, loc *time.Location, m *metrics.MonitorMetrics) *RecordingService {
	return &RecordingService{foods: foods, users: users, records: records, loc: loc, metrics: m}
}

// SubmitReading validates the food and user references, classifies the
// reading against the food's safe range, and persists the record together
// with the derived alert (if any) atomically. The temperature itself is
// never rejected: out-of-range values are what alerting is for.
func (s *RecordingService) SubmitReading(ctx context.Context, in ReadingInput) (models.TemperatureRecord, error) {
	food, err := s.foods.GetByID(ctx, in.FoodID)
	if err != nil {
		return models.TemperatureRecord{}, fmt.Errorf("load food: %w", err)
	}
	if food == nil {
		return models.TemperatureRecord{}, ErrFoodNotFound
	}

	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return models.TemperatureRecord{}, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return models.TemperatureRecord{}, ErrUserNotFound
	}

	rec := models.TemperatureRecord{
		FoodID:      in.FoodID,
		UserID:      in.UserID,
		Temperature: in.Temperature,
	}

	var alert *models.Alert
	if desc, fired := Classify(food.TempMin, food.TempMax, in.Temperature); fired {
		alert = &models.Alert{
			Type:   desc.Type,
			Danger: desc.Danger,
		}
	}

	rec, err = s.records.CreateWithAlert(ctx, rec, alert)
	if err != nil {
		return models.TemperatureRecord{}, err
	}

	s.metrics.CountReading()
	if alert != nil {
		s.metrics.CountAlertRaised(string(alert.Danger))
	}
	return rec, nil
}

// ListForDay returns the user's records for the calendar day named by day
// (today when zero), anchored in the service's display location.
func (s *RecordingService) ListForDay(ctx context.Context, userID string, day time.Time) ([]models.TemperatureRecord, error) {
	from, to := dayBounds(day, s.loc)
	return s.records.ListByUser(ctx, userID, from, to)
}
