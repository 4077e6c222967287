package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/features/stats/models"
	"channel-stats-backend/internal/features/stats/repository"
)

// passthroughCache always misses and never stores, so tests observe the
// repository directly.
type passthroughCache struct {
	keys []string
}

func (c *passthroughCache) GetOrSet(_ context.Context, key string, dest interface{}, _ time.Duration, setter func() (interface{}, error)) error {
	c.keys = append(c.keys, key)
	value, err := setter()
	if err != nil {
		return err
	}
	switch d := dest.(type) {
	case *[]models.ChannelSummaryRow:
		*d = value.([]models.ChannelSummaryRow)
	case *models.ChannelDetail:
		*d = value.(models.ChannelDetail)
	case *[]models.InviteLinkRow:
		*d = value.([]models.InviteLinkRow)
	}
	return nil
}

type fakeRepo struct {
	channels     []models.RawChannelRecord
	detail       *repository.RawChannelDetail
	links        []models.RawLinkRecord
	lastFilter   models.StatsFilter
	lastDateFrom string
	lastDateTo   string
}

func (r *fakeRepo) ChannelStats(_ context.Context, _ string, filter models.StatsFilter) ([]models.RawChannelRecord, error) {
	r.lastFilter = filter
	return r.channels, nil
}

func (r *fakeRepo) ChannelDetail(_ context.Context, _ string, _ int64, dateFrom, dateTo string) (*repository.RawChannelDetail, error) {
	r.lastDateFrom, r.lastDateTo = dateFrom, dateTo
	if r.detail == nil {
		return nil, repository.ErrChannelNotFound
	}
	return r.detail, nil
}

func (r *fakeRepo) InviteLinks(_ context.Context, _ string, _ int64, dateFrom, dateTo string) ([]models.RawLinkRecord, error) {
	r.lastDateFrom, r.lastDateTo = dateFrom, dateTo
	return r.links, nil
}

func (r *fakeRepo) PruneOlderThan(context.Context, string, time.Time) (int64, error) {
	return 0, nil
}

func newTestService(repo *fakeRepo) (*statsService, *passthroughCache) {
	c := &passthroughCache{}
	svc := NewStatsService(repo, c, time.Minute).(*statsService)
	svc.clock = func() time.Time {
		return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	}
	return svc, c
}

func TestGetChannelStatsDefaultWindow(t *testing.T) {
	repo := &fakeRepo{channels: []models.RawChannelRecord{
		{ChannelID: 1, Title: "a", Enter: 10, Leave: 2, RequestCount: 4, MembersCount: 100},
	}}
	svc, _ := newTestService(repo)

	rows, err := svc.GetChannelStats(context.Background(), "u@example.com", models.StatsRequest{
		BoardKeys: []string{"board-a"},
	})
	require.NoError(t, err)

	// Default window is the last 7 days ending today.
	assert.Equal(t, "2024-06-08", repo.lastFilter.DateFrom)
	assert.Equal(t, "2024-06-15", repo.lastFilter.DateTo)

	require.Len(t, rows, 1)
	assert.Equal(t, models.ChannelSummaryRow{
		Title: "a", ChannelID: 1, Enter: 10, Leave: 2, RequestCount: 4,
	}, rows[0])
}

func TestGetChannelStatsExplicitDatesWin(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)

	_, err := svc.GetChannelStats(context.Background(), "u@example.com", models.StatsRequest{
		BoardKeys: []string{"board-a"},
		Window:    "90d",
		DateFrom:  "2024-01-01",
		DateTo:    "2024-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", repo.lastFilter.DateFrom)
	assert.Equal(t, "2024-02-01", repo.lastFilter.DateTo)
}

func TestGetChannelStatsHalfPopulatedRange(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	for _, req := range []models.StatsRequest{
		{BoardKeys: []string{"b"}, DateFrom: "2024-01-01"},
		{BoardKeys: []string{"b"}, DateTo: "2024-01-01"},
	} {
		_, err := svc.GetChannelStats(context.Background(), "u@example.com", req)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	}
}

func TestGetChannelStatsInvalidWindow(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	_, err := svc.GetChannelStats(context.Background(), "u@example.com", models.StatsRequest{
		BoardKeys: []string{"b"},
		Window:    "365d",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestGetChannelStatsReversedRange(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	_, err := svc.GetChannelStats(context.Background(), "u@example.com", models.StatsRequest{
		BoardKeys: []string{"b"},
		DateFrom:  "2024-02-01",
		DateTo:    "2024-01-01",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestGetChannelStatsCacheKeyDeterministic(t *testing.T) {
	repo := &fakeRepo{}
	svc, c := newTestService(repo)

	base := models.StatsRequest{BoardKeys: []string{"b2", "b1"}, ChannelNames: []string{"y", "x"}}
	reordered := models.StatsRequest{BoardKeys: []string{"b1", "b2"}, ChannelNames: []string{"x", "y"}}

	_, err := svc.GetChannelStats(context.Background(), "u@example.com", base)
	require.NoError(t, err)
	_, err = svc.GetChannelStats(context.Background(), "u@example.com", reordered)
	require.NoError(t, err)

	require.Len(t, c.keys, 2)
	assert.Equal(t, c.keys[0], c.keys[1], "same parameter tuple must produce the same cache key")
}

func TestGetChannelDetailSortsHistory(t *testing.T) {
	repo := &fakeRepo{detail: &repository.RawChannelDetail{
		ChannelID: 7,
		Title:     "daily",
		Points: []models.HistoryPoint{
			{Date: "2024-06-10", AllEnter: 5},
			{Date: "2024-06-08", AllEnter: 1},
		},
	}}
	svc, _ := newTestService(repo)

	detail, err := svc.GetChannelDetail(context.Background(), "u@example.com", models.DetailsRequest{ChannelID: "7"})
	require.NoError(t, err)

	assert.Equal(t, "daily", detail.Title)
	require.Len(t, detail.History.Stats, 2)
	assert.Equal(t, "2024-06-08", detail.History.Stats[0].Date)
	assert.Equal(t, "2024-06-10", detail.History.Stats[1].Date)
}

func TestGetChannelDetailNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	_, err := svc.GetChannelDetail(context.Background(), "u@example.com", models.DetailsRequest{ChannelID: "999"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeChannelNotFound, appErr.Code)
}

func TestGetChannelDetailBadChannelID(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	_, err := svc.GetChannelDetail(context.Background(), "u@example.com", models.DetailsRequest{ChannelID: "not-a-number"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestGetInviteLinksRename(t *testing.T) {
	price := int64(500)
	repo := &fakeRepo{links: []models.RawLinkRecord{
		{
			ID: 1, Title: "promo", Price: &price,
			Enter: 3, RefStats: []models.LinkDayStat{{Date: "2024-06-10", Enter: 3}},
		},
		{ID: 2, Title: "free"},
	}}
	svc, _ := newTestService(repo)

	rows, err := svc.GetInviteLinks(context.Background(), "u@example.com", models.DetailsRequest{ChannelID: "7", Window: "1d"})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-14", repo.lastDateFrom)
	assert.Equal(t, "2024-06-15", repo.lastDateTo)

	require.Len(t, rows, 2)
	assert.Equal(t, repo.links[0].RefStats, rows[0].Stats)
	assert.Equal(t, &price, rows[0].Price)
	assert.Nil(t, rows[1].Price)
	assert.Nil(t, rows[1].Limit)
}
