package repository

import (
	"context"

	"channel-stats-backend/internal/features/board/models"
)

// BoardRepository reads the board/channel dictionary the collector maintains.
type BoardRepository interface {
	GetByLogin(ctx context.Context, login string) ([]models.Board, error)
	Cities(ctx context.Context) ([]string, error)
}
