package workers

import (
	"context"
	"time"

	"channel-stats-backend/internal/common/logger"

	settingsrepo "channel-stats-backend/internal/features/settings/repository"
	statsrepo "channel-stats-backend/internal/features/stats/repository"
)

// Cache инвалидирует закэшированную статистику пользователя после чистки.
type Cache interface {
	InvalidateUserStats(ctx context.Context, login string) error
}

// RetentionWorker периодически удаляет суточную статистику старше
// пользовательского срока хранения.
type RetentionWorker struct {
	settings settingsrepo.SettingsRepository
	stats    statsrepo.StatsRepository
	cache    Cache
	interval time.Duration
	clock    func() time.Time
}

func NewRetentionWorker(settings settingsrepo.SettingsRepository, stats statsrepo.StatsRepository, cache Cache, interval time.Duration) *RetentionWorker {
	return &RetentionWorker{
		settings: settings,
		stats:    stats,
		cache:    cache,
		interval: interval,
		clock:    time.Now,
	}
}

// Start блокирует до отмены контекста. Первая чистка выполняется сразу.
func (w *RetentionWorker) Start(ctx context.Context) {
	logger.Info().
		Dur("interval", w.interval).
		Msg("Starting retention worker")

	w.Sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sweep(ctx)
		case <-ctx.Done():
			logger.Info().Msg("Retention worker stopped")
			return
		}
	}
}

// Sweep проходит по всем пользователям и удаляет устаревшие строки.
func (w *RetentionWorker) Sweep(ctx context.Context) {
	retention, err := w.settings.AllRetention(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Retention sweep: failed to list settings")
		return
	}

	now := w.clock()
	for login, days := range retention {
		cutoff := now.AddDate(0, 0, -days)
		removed, err := w.stats.PruneOlderThan(ctx, login, cutoff)
		if err != nil {
			logger.Error().
				Err(err).
				Str("login", login).
				Msg("Retention sweep: prune failed")
			continue
		}
		if removed == 0 {
			continue
		}

		logger.Info().
			Str("login", login).
			Int64("removed", removed).
			Int("retention_days", days).
			Msg("Retention sweep: pruned stale rows")

		if err := w.cache.InvalidateUserStats(ctx, login); err != nil {
			logger.Warn().
				Err(err).
				Str("login", login).
				Msg("Retention sweep: cache invalidation failed")
		}
	}
}
