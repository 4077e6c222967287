package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"channel-stats-backend/internal/features/settings/models"
	"channel-stats-backend/internal/features/settings/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetRetentionDays(ctx context.Context, login string) (int, error) {
	query := `SELECT retention_days FROM user_settings WHERE login = $1`

	var days int
	err := r.db.QueryRowContext(ctx, query, login).Scan(&days)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultRetentionDays, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get retention days: %w", err)
	}
	return days, nil
}

func (r *settingsRepository) SetRetentionDays(ctx context.Context, login string, days int) error {
	query := `
		INSERT INTO user_settings (login, retention_days)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE SET retention_days = EXCLUDED.retention_days`

	if _, err := r.db.ExecContext(ctx, query, login, days); err != nil {
		return fmt.Errorf("set retention days: %w", err)
	}
	return nil
}

func (r *settingsRepository) AllRetention(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT u.login, COALESCE(s.retention_days, $1)
		FROM users u
		LEFT JOIN user_settings s ON s.login = u.login`

	rows, err := r.db.QueryContext(ctx, query, models.DefaultRetentionDays)
	if err != nil {
		return nil, fmt.Errorf("list retention settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var login string
		var days int
		if err := rows.Scan(&login, &days); err != nil {
			return nil, fmt.Errorf("scan retention settings: %w", err)
		}
		result[login] = days
	}
	return result, rows.Err()
}
