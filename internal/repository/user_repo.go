package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodsafety/internal/models"

	"github.com/google/uuid"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite { return &UserSQLite{db: db} }

var _ UserRepo = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (id, username, password_hash, role) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, role FROM users WHERE username = ?`
	selectUserExistsSQL     = `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`
)

// Create inserts a new user and returns its generated id.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash string, role models.Role) (string, error) {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, insertUserSQL, id, username, passwordHash, string(role)); err != nil {
		return "", fmt.Errorf("insert user %q: %w", username, err)
	}
	return id, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// Exists reports whether a user with the given id is present.
func (r *UserSQLite) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, selectUserExistsSQL, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user %q: %w", id, err)
	}
	return exists, nil
}
