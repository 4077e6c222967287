package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	platformredis "channel-stats-backend/internal/platform/redis"

	"channel-stats-backend/internal/features/telegramlink/models"
	"channel-stats-backend/internal/features/telegramlink/repository"
)

const (
	keyPrefixWizard = "tg:wizard:"
	keyPrefixLink   = "tg:link:"
)

type wizardRepository struct {
	client *platformredis.Client
}

func NewWizardRepository(client *platformredis.Client) repository.WizardRepository {
	return &wizardRepository{client: client}
}

func (r *wizardRepository) Save(ctx context.Context, state *models.WizardState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal wizard state: %w", err)
	}
	return r.client.Set(ctx, keyPrefixWizard+state.SessionName, data, ttl).Err()
}

func (r *wizardRepository) Get(ctx context.Context, sessionName string) (*models.WizardState, error) {
	data, err := r.client.Get(ctx, keyPrefixWizard+sessionName).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrWizardNotFound
	}
	if err != nil {
		return nil, err
	}
	var state models.WizardState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal wizard state: %w", err)
	}
	return &state, nil
}

func (r *wizardRepository) Delete(ctx context.Context, sessionName string) error {
	return r.client.Del(ctx, keyPrefixWizard+sessionName).Err()
}

type linkRepository struct {
	client *platformredis.Client
}

func NewLinkRepository(client *platformredis.Client) repository.LinkRepository {
	return &linkRepository{client: client}
}

// Save пишет запись без TTL: привязка живёт до явной отмены.
func (r *linkRepository) Save(ctx context.Context, login string, record *models.LinkRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal link record: %w", err)
	}
	return r.client.Set(ctx, keyPrefixLink+login, data, 0).Err()
}

func (r *linkRepository) Get(ctx context.Context, login string) (*models.LinkRecord, error) {
	data, err := r.client.Get(ctx, keyPrefixLink+login).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	var record models.LinkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal link record: %w", err)
	}
	return &record, nil
}
