package service

import (
	"context"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/logger"
	"channel-stats-backend/internal/common/validation"

	"channel-stats-backend/internal/features/settings/models"
	"channel-stats-backend/internal/features/settings/repository"
)

// SettingsService читает и сохраняет настройки пользователя.
type SettingsService interface {
	Get(ctx context.Context, login string) (*models.Settings, error)
	Update(ctx context.Context, login string, req models.UpdateRequest) (*models.Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, login string) (*models.Settings, error) {
	days, err := s.repo.GetRetentionDays(ctx, login)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get settings", err)
	}
	return &models.Settings{RetentionDays: days}, nil
}

func (s *settingsService) Update(ctx context.Context, login string, req models.UpdateRequest) (*models.Settings, error) {
	if req.RetentionDays == nil {
		return nil, apperrors.NewValidationError("retentionDays", "field is required")
	}
	days := *req.RetentionDays
	if err := validation.ValidateRetentionDays(days); err != nil {
		return nil, apperrors.NewValidationError("retentionDays", err.Error())
	}

	if err := s.repo.SetRetentionDays(ctx, login, days); err != nil {
		return nil, apperrors.NewDatabaseError("save settings", err)
	}

	logger.Info().
		Str("login", login).
		Int("retention_days", days).
		Msg("Retention settings updated")
	return &models.Settings{RetentionDays: days}, nil
}
