package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-stats-backend/internal/features/stats/models"
	statsrepo "channel-stats-backend/internal/features/stats/repository"
)

type fakeSettings struct {
	retention map[string]int
}

func (f *fakeSettings) GetRetentionDays(_ context.Context, login string) (int, error) {
	return f.retention[login], nil
}

func (f *fakeSettings) SetRetentionDays(_ context.Context, login string, days int) error {
	f.retention[login] = days
	return nil
}

func (f *fakeSettings) AllRetention(context.Context) (map[string]int, error) {
	return f.retention, nil
}

type fakeStats struct {
	removed map[string]int64
	cutoffs map[string]time.Time
}

func (f *fakeStats) ChannelStats(context.Context, string, models.StatsFilter) ([]models.RawChannelRecord, error) {
	return nil, nil
}

func (f *fakeStats) ChannelDetail(context.Context, string, int64, string, string) (*statsrepo.RawChannelDetail, error) {
	return nil, statsrepo.ErrChannelNotFound
}

func (f *fakeStats) InviteLinks(context.Context, string, int64, string, string) ([]models.RawLinkRecord, error) {
	return nil, nil
}

func (f *fakeStats) PruneOlderThan(_ context.Context, login string, cutoff time.Time) (int64, error) {
	f.cutoffs[login] = cutoff
	return f.removed[login], nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateUserStats(_ context.Context, login string) error {
	f.invalidated = append(f.invalidated, login)
	return nil
}

func TestSweepPrunesPerUserRetention(t *testing.T) {
	settings := &fakeSettings{retention: map[string]int{
		"a@example.com": 15,
		"b@example.com": 30,
	}}
	stats := &fakeStats{
		removed: map[string]int64{"a@example.com": 7},
		cutoffs: make(map[string]time.Time),
	}
	cache := &fakeCache{}

	w := NewRetentionWorker(settings, stats, cache, time.Hour)
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	w.clock = func() time.Time { return now }

	w.Sweep(context.Background())

	require.Len(t, stats.cutoffs, 2)
	assert.Equal(t, now.AddDate(0, 0, -15), stats.cutoffs["a@example.com"])
	assert.Equal(t, now.AddDate(0, 0, -30), stats.cutoffs["b@example.com"])

	// Кэш сбрасывается только там, где что-то удалили.
	assert.Equal(t, []string{"a@example.com"}, cache.invalidated)
}
