package models

import "time"

// TemperatureRecord is one logged measurement of a food's temperature.
// Created exactly once per submitted reading and immutable afterwards.
type TemperatureRecord struct {
	ID          string    `json:"id"`
	FoodID      string    `json:"food_id"`
	UserID      string    `json:"user_id"`
	Temperature float64   `json:"temperature"` // °C
	CreatedAt   time.Time `json:"created_at"`
}
