package repository

import (
	"context"
	"sync"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
)

// memorySession holds live sessions by reference for single-process deployments.
type memorySession struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySession{
		sessions: make(map[string]*game.Session),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *game.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID()] = session

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*game.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, id)

	return nil
}
