package repository

import (
	"context"
	"errors"
	"time"

	"channel-stats-backend/internal/features/stats/models"
)

var ErrChannelNotFound = errors.New("channel not found")

// RawChannelDetail is a channel's title plus its unsorted daily history as
// scanned from storage.
type RawChannelDetail struct {
	ChannelID int64
	Title     string
	Points    []models.HistoryPoint
}

// StatsRepository reads the pre-aggregated stats the collector writes.
// Every query is scoped to the owning login through the boards join.
type StatsRepository interface {
	ChannelStats(ctx context.Context, login string, filter models.StatsFilter) ([]models.RawChannelRecord, error)
	ChannelDetail(ctx context.Context, login string, channelID int64, dateFrom, dateTo string) (*RawChannelDetail, error)
	InviteLinks(ctx context.Context, login string, channelID int64, dateFrom, dateTo string) ([]models.RawLinkRecord, error)
	// PruneOlderThan removes daily rows older than cutoff for one login.
	PruneOlderThan(ctx context.Context, login string, cutoff time.Time) (int64, error)
}
