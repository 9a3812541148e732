package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
)

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *game.Session) error
	GetByID(ctx context.Context, id string) (*game.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// dbSession keeps live sessions as JSON records that expire after ttl of inactivity.
type dbSession struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository - ttl <= 0 keeps sessions until they are deleted.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	if ttl < 0 {
		ttl = 0
	}

	return &dbSession{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, session *game.Session) error {
	sessionJSON, err := json.Marshal(session.Record())
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	err = that.client.Set(ctx, sessionKey(session.ID()), sessionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

// GetByID replays the stored moves through the rules engine.
func (that *dbSession) GetByID(ctx context.Context, id string) (*game.Session, error) {
	response, err := that.client.Get(ctx, sessionKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w by id", err)
	}

	var record game.Record
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	session, err := game.Restore(record)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return session, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	err := that.client.Del(ctx, sessionKey(id)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session by ID: %w", err)
	}

	return nil
}
