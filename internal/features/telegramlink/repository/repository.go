package repository

import (
	"context"
	"errors"
	"time"

	"channel-stats-backend/internal/features/telegramlink/models"
)

var (
	ErrWizardNotFound = errors.New("wizard state not found")
	ErrLinkNotFound   = errors.New("telegram link not found")
)

// WizardRepository хранит промежуточное состояние мастера привязки.
type WizardRepository interface {
	Save(ctx context.Context, state *models.WizardState, ttl time.Duration) error
	Get(ctx context.Context, sessionName string) (*models.WizardState, error)
	Delete(ctx context.Context, sessionName string) error
}

// LinkRepository хранит запись о привязанном аккаунте.
type LinkRepository interface {
	Save(ctx context.Context, login string, record *models.LinkRecord) error
	Get(ctx context.Context, login string) (*models.LinkRecord, error)
}
