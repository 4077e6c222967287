package repository

import "context"

// SettingsRepository хранит настройки пользователей.
type SettingsRepository interface {
	GetRetentionDays(ctx context.Context, login string) (int, error)
	SetRetentionDays(ctx context.Context, login string, days int) error
	// AllRetention возвращает срок хранения для каждого пользователя,
	// подставляя значение по умолчанию при отсутствии настроек.
	AllRetention(ctx context.Context) (map[string]int, error)
}
