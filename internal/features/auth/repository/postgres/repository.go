package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"channel-stats-backend/internal/features/auth/models"
	"channel-stats-backend/internal/features/auth/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT login, password_hash, created_at FROM users WHERE login = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, login).Scan(&user.Login, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (login, password_hash, created_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, user.Login, user.PasswordHash, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
