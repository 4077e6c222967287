package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"channel-stats-backend/internal/features/stats/models"
	"channel-stats-backend/internal/features/stats/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ChannelStats(ctx context.Context, login string, filter models.StatsFilter) ([]models.RawChannelRecord, error) {
	query := `
		SELECT c.channel_id, c.board_key, c.title, c.avatar, c.city,
			COALESCE(SUM(s.enter), 0),
			COALESCE(SUM(s.leave), 0),
			COALESCE(SUM(s.request_count), 0),
			COALESCE(MAX(s.members_count), 0)
		FROM channels c
		JOIN boards b ON b.board_key = c.board_key
		LEFT JOIN channel_daily_stats s
			ON s.channel_id = c.channel_id AND s.day BETWEEN $1::date AND $2::date
		WHERE b.login = $3 AND c.board_key = ANY($4)
	`
	args := []interface{}{filter.DateFrom, filter.DateTo, login, pq.Array(filter.BoardKeys)}

	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND c.city = $%d", len(args))
	}
	if len(filter.ChannelNames) > 0 {
		patterns := make([]string, 0, len(filter.ChannelNames))
		for _, name := range filter.ChannelNames {
			patterns = append(patterns, "%"+name+"%")
		}
		args = append(args, pq.Array(patterns))
		query += fmt.Sprintf(" AND c.title ILIKE ANY($%d)", len(args))
	}

	query += `
		GROUP BY c.channel_id, c.board_key, c.title, c.avatar, c.city
		ORDER BY c.title
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel stats: %w", err)
	}
	defer rows.Close()

	records := make([]models.RawChannelRecord, 0)
	for rows.Next() {
		var rec models.RawChannelRecord
		if err := rows.Scan(
			&rec.ChannelID, &rec.BoardKey, &rec.Title, &rec.Avatar, &rec.City,
			&rec.Enter, &rec.Leave, &rec.RequestCount, &rec.MembersCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan channel stats row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *statsRepository) ChannelDetail(ctx context.Context, login string, channelID int64, dateFrom, dateTo string) (*repository.RawChannelDetail, error) {
	titleQuery := `
		SELECT c.title
		FROM channels c
		JOIN boards b ON b.board_key = c.board_key
		WHERE b.login = $1 AND c.channel_id = $2
	`

	detail := &repository.RawChannelDetail{ChannelID: channelID, Points: []models.HistoryPoint{}}
	err := r.db.QueryRowContext(ctx, titleQuery, login, channelID).Scan(&detail.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	historyQuery := `
		SELECT to_char(day, 'YYYY-MM-DD'), enter, leave
		FROM channel_daily_stats
		WHERE channel_id = $1 AND day BETWEEN $2::date AND $3::date
	`

	rows, err := r.db.QueryContext(ctx, historyQuery, channelID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.HistoryPoint
		if err := rows.Scan(&p.Date, &p.AllEnter, &p.AllLeave); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		detail.Points = append(detail.Points, p)
	}

	return detail, rows.Err()
}

func (r *statsRepository) InviteLinks(ctx context.Context, login string, channelID int64, dateFrom, dateTo string) ([]models.RawLinkRecord, error) {
	query := `
		SELECT l.link_id, l.title, l.price, l.link_limit,
			to_char(s.day, 'YYYY-MM-DD'), s.enter, s.leave, s.kick, s.pending_requests
		FROM invite_links l
		JOIN channels c ON c.channel_id = l.channel_id
		JOIN boards b ON b.board_key = c.board_key
		LEFT JOIN invite_link_daily_stats s
			ON s.link_id = l.link_id AND s.day BETWEEN $1::date AND $2::date
		WHERE b.login = $3 AND l.channel_id = $4
		ORDER BY l.link_id, s.day
	`

	rows, err := r.db.QueryContext(ctx, query, dateFrom, dateTo, login, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invite links: %w", err)
	}
	defer rows.Close()

	records := make([]models.RawLinkRecord, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			linkID       int64
			title        string
			price, limit sql.NullInt64
			day          sql.NullString
			stat         models.LinkDayStat
			enter        sql.NullInt64
			leave        sql.NullInt64
			kick         sql.NullInt64
			pending      sql.NullInt64
		)
		if err := rows.Scan(&linkID, &title, &price, &limit, &day, &enter, &leave, &kick, &pending); err != nil {
			return nil, fmt.Errorf("failed to scan invite link row: %w", err)
		}

		i, ok := index[linkID]
		if !ok {
			i = len(records)
			index[linkID] = i
			rec := models.RawLinkRecord{ID: linkID, Title: title, RefStats: []models.LinkDayStat{}}
			if price.Valid {
				v := price.Int64
				rec.Price = &v
			}
			if limit.Valid {
				v := limit.Int64
				rec.Limit = &v
			}
			records = append(records, rec)
		}

		if day.Valid {
			stat = models.LinkDayStat{
				Date:            day.String,
				Enter:           enter.Int64,
				Leave:           leave.Int64,
				Kick:            kick.Int64,
				PendingRequests: pending.Int64,
			}
			records[i].RefStats = append(records[i].RefStats, stat)
			records[i].Enter += stat.Enter
			records[i].Leave += stat.Leave
			records[i].Kick += stat.Kick
			records[i].PendingRequests += stat.PendingRequests
		}
	}

	return records, rows.Err()
}

func (r *statsRepository) PruneOlderThan(ctx context.Context, login string, cutoff time.Time) (int64, error) {
	day := cutoff.Format("2006-01-02")

	channelQuery := `
		DELETE FROM channel_daily_stats s
		USING channels c, boards b
		WHERE s.channel_id = c.channel_id
			AND c.board_key = b.board_key
			AND b.login = $1
			AND s.day < $2::date
	`
	res, err := r.db.ExecContext(ctx, channelQuery, login, day)
	if err != nil {
		return 0, fmt.Errorf("failed to prune channel stats: %w", err)
	}
	pruned, _ := res.RowsAffected()

	linkQuery := `
		DELETE FROM invite_link_daily_stats s
		USING invite_links l, channels c, boards b
		WHERE s.link_id = l.link_id
			AND l.channel_id = c.channel_id
			AND c.board_key = b.board_key
			AND b.login = $1
			AND s.day < $2::date
	`
	res, err = r.db.ExecContext(ctx, linkQuery, login, day)
	if err != nil {
		return pruned, fmt.Errorf("failed to prune invite link stats: %w", err)
	}
	n, _ := res.RowsAffected()

	return pruned + n, nil
}
