package service

import (
	"context"
	"time"

	"channel-stats-backend/internal/common/cache"
	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/features/board/models"
	"channel-stats-backend/internal/features/board/repository"
)

type BoardService interface {
	GetBoards(ctx context.Context, login string) ([]models.Board, error)
	GetCities(ctx context.Context) ([]string, error)
}

type boardService struct {
	repo     repository.BoardRepository
	cache    Cache
	boardTTL time.Duration
	dictTTL  time.Duration
}

func NewBoardService(repo repository.BoardRepository, cacheSvc Cache, boardTTL, dictTTL time.Duration) BoardService {
	return &boardService{
		repo:     repo,
		cache:    cacheSvc,
		boardTTL: boardTTL,
		dictTTL:  dictTTL,
	}
}

func (s *boardService) GetBoards(ctx context.Context, login string) ([]models.Board, error) {
	var boards []models.Board
	err := s.cache.GetOrSet(ctx, cache.Key("boards", login), &boards, s.boardTTL, func() (interface{}, error) {
		return s.repo.GetByLogin(ctx, login)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get boards", err)
	}
	return boards, nil
}

func (s *boardService) GetCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := s.cache.GetOrSet(ctx, cache.Key("cities"), &cities, s.dictTTL, func() (interface{}, error) {
		return s.repo.Cities(ctx)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get cities", err)
	}
	return cities, nil
}
