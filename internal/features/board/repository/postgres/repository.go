package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"channel-stats-backend/internal/features/board/models"
	"channel-stats-backend/internal/features/board/repository"
)

type boardRepository struct {
	db *sql.DB
}

func NewBoardRepository(db *sql.DB) repository.BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) GetByLogin(ctx context.Context, login string) ([]models.Board, error) {
	query := `
		SELECT b.board_key, b.title, c.channel_id, c.title
		FROM boards b
		LEFT JOIN channels c ON c.board_key = b.board_key
		WHERE b.login = $1
		ORDER BY b.board_key, c.title
	`

	rows, err := r.db.QueryContext(ctx, query, login)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := make([]models.Board, 0)
	index := make(map[string]int)

	for rows.Next() {
		var (
			key, title   string
			channelID    sql.NullInt64
			channelTitle sql.NullString
		)
		if err := rows.Scan(&key, &title, &channelID, &channelTitle); err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}

		i, ok := index[key]
		if !ok {
			i = len(boards)
			index[key] = i
			boards = append(boards, models.Board{Key: key, Title: title, Channels: []models.Channel{}})
		}

		if channelID.Valid {
			boards[i].Channels = append(boards[i].Channels, models.Channel{
				ID:    channelID.Int64,
				Title: channelTitle.String,
			})
		}
	}

	return boards, rows.Err()
}

func (r *boardRepository) Cities(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT city FROM channels WHERE city <> '' ORDER BY city`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := make([]string, 0)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}
