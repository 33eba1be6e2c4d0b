package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bugninjaplatform/internal/domain"
)

type preferenceRepository struct {
	DB *sql.DB
}

func NewPreferenceRepository(db *sql.DB) domain.PreferenceRepository {
	return &preferenceRepository{
		DB: db,
	}
}

// EnsureSchema creates the preferences table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS dashboard_preferences (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT value
		FROM dashboard_preferences
		WHERE key = $1
	`
	var value string
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO dashboard_preferences (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, key, value)
	return err
}

func (r *preferenceRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM dashboard_preferences WHERE key = $1`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
