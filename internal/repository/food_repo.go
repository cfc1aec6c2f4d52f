package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodsafety/internal/models"
)

type FoodSQLite struct {
	db *sql.DB
}

func NewFoodSQLite(db *sql.DB) *FoodSQLite { return &FoodSQLite{db: db} }

var _ FoodRepo = (*FoodSQLite)(nil)

const selectFoodByIDSQL = `SELECT id, name, temp_min, temp_max, sector_id, active FROM foods WHERE id = ?`

// GetByID fetches a food by id. Returns (nil, nil) if not found.
func (r *FoodSQLite) GetByID(ctx context.Context, id string) (*models.Food, error) {
	var f models.Food
	err := r.db.QueryRowContext(ctx, selectFoodByIDSQL, id).Scan(
		&f.ID,
		&f.Name,
		&f.TempMin,
		&f.TempMax,
		&f.SectorID,
		&f.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select food %q: %w", id, err)
	}
	return &f, nil
}
