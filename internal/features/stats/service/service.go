package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"channel-stats-backend/internal/common/cache"
	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/features/stats/mapper"
	"channel-stats-backend/internal/features/stats/models"
	"channel-stats-backend/internal/features/stats/repository"
	"channel-stats-backend/internal/features/stats/timerange"
)

type StatsService interface {
	GetChannelStats(ctx context.Context, login string, req models.StatsRequest) ([]models.ChannelSummaryRow, error)
	GetChannelDetail(ctx context.Context, login string, req models.DetailsRequest) (*models.ChannelDetail, error)
	GetInviteLinks(ctx context.Context, login string, req models.DetailsRequest) ([]models.InviteLinkRow, error)
}

type statsService struct {
	repo     repository.StatsRepository
	cache    Cache
	cacheTTL time.Duration
	clock    func() time.Time
}

func NewStatsService(repo repository.StatsRepository, cacheSvc Cache, cacheTTL time.Duration) StatsService {
	return &statsService{
		repo:     repo,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		clock:    time.Now,
	}
}

func (s *statsService) GetChannelStats(ctx context.Context, login string, req models.StatsRequest) ([]models.ChannelSummaryRow, error) {
	if len(req.BoardKeys) == 0 {
		return nil, apperrors.NewValidationError("board_key", "at least one board key is required")
	}

	period, err := s.resolvePeriod(req.Window, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	filter := models.StatsFilter{
		BoardKeys:    req.BoardKeys,
		ChannelNames: req.ChannelNames,
		City:         req.City,
		DateFrom:     period.DateFrom,
		DateTo:       period.DateTo,
	}

	key := cache.Key("stats", login, "channels",
		canonical(req.BoardKeys), canonical(req.ChannelNames), req.City,
		period.DateFrom, period.DateTo)

	var rows []models.ChannelSummaryRow
	err = s.cache.GetOrSet(ctx, key, &rows, s.cacheTTL, func() (interface{}, error) {
		raw, err := s.repo.ChannelStats(ctx, login, filter)
		if err != nil {
			return nil, apperrors.NewDatabaseError("channel stats", err)
		}
		return mapper.ChannelSummaryRows(raw), nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *statsService) GetChannelDetail(ctx context.Context, login string, req models.DetailsRequest) (*models.ChannelDetail, error) {
	channelID, err := parseChannelID(req.ChannelID)
	if err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(req.Window, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	key := cache.Key("stats", login, "detail", req.ChannelID, period.DateFrom, period.DateTo)

	var detail models.ChannelDetail
	err = s.cache.GetOrSet(ctx, key, &detail, s.cacheTTL, func() (interface{}, error) {
		raw, err := s.repo.ChannelDetail(ctx, login, channelID, period.DateFrom, period.DateTo)
		if errors.Is(err, repository.ErrChannelNotFound) {
			return nil, apperrors.NewChannelNotFoundError(channelID)
		}
		if err != nil {
			return nil, apperrors.NewDatabaseError("channel detail", err)
		}
		return models.ChannelDetail{
			ChannelID: raw.ChannelID,
			Title:     raw.Title,
			History:   models.ChannelHistory{Stats: mapper.SortedHistory(raw.Points)},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *statsService) GetInviteLinks(ctx context.Context, login string, req models.DetailsRequest) ([]models.InviteLinkRow, error) {
	channelID, err := parseChannelID(req.ChannelID)
	if err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(req.Window, req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	key := cache.Key("stats", login, "links", req.ChannelID, period.DateFrom, period.DateTo)

	var rows []models.InviteLinkRow
	err = s.cache.GetOrSet(ctx, key, &rows, s.cacheTTL, func() (interface{}, error) {
		raw, err := s.repo.InviteLinks(ctx, login, channelID, period.DateFrom, period.DateTo)
		if err != nil {
			return nil, apperrors.NewDatabaseError("invite links", err)
		}
		return mapper.InviteLinkRows(raw), nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// resolvePeriod turns the request's period fields into the canonical API
// date pair. A complete explicit pair wins over the window tag; a
// half-populated pair never reaches the range resolver and is rejected
// here as a validation error.
func (s *statsService) resolvePeriod(windowTag, dateFrom, dateTo string) (timerange.APIRange, error) {
	var custom timerange.DateRange

	switch {
	case dateFrom != "" && dateTo != "":
		from, err := timerange.ParseAPIDate(dateFrom)
		if err != nil {
			return timerange.APIRange{}, apperrors.NewValidationError("dateFrom", err.Error())
		}
		to, err := timerange.ParseAPIDate(dateTo)
		if err != nil {
			return timerange.APIRange{}, apperrors.NewValidationError("dateTo", err.Error())
		}
		if to.Before(from) {
			return timerange.APIRange{}, apperrors.NewValidationError("dateTo", "dateTo must not precede dateFrom")
		}
		custom = timerange.DateRange{From: from, To: to}
	case dateFrom != "" || dateTo != "":
		return timerange.APIRange{}, apperrors.NewValidationError("dateFrom", "dateFrom and dateTo must be provided together")
	}

	window := timerange.DefaultWindow
	if windowTag != "" {
		w, err := timerange.ParseWindow(windowTag)
		if err != nil {
			return timerange.APIRange{}, apperrors.NewValidationError("window", err.Error())
		}
		window = w
	}

	api, ok := timerange.Resolve(window, custom, s.clock()).API()
	if !ok {
		return timerange.APIRange{}, apperrors.New(apperrors.ErrCodeInternal, "range resolution produced an incomplete range")
	}
	return api, nil
}

func parseChannelID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("channelId", "must be a numeric channel id")
	}
	return id, nil
}

// canonical joins a slice into a deterministic cache-key fragment.
func canonical(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
