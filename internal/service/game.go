package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
)

type GameService interface {
	CreateGame(ctx context.Context, config entity.GameConfig) (*game.Session, error)
	UpdateGame(ctx context.Context, session *game.Session) error
	DeleteGame(ctx context.Context, id string) error

	GetGameByID(ctx context.Context, id string) (*game.Session, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *game.Session) error
	GetByID(ctx context.Context, id string) (*game.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	sessionRepo sessionRepo
}

func NewGameService(sessionRepo sessionRepo) GameService {
	return &gameService{
		sessionRepo: sessionRepo,
	}
}

func (that *gameService) CreateGame(ctx context.Context, config entity.GameConfig) (*game.Session, error) {
	session, err := game.NewSession(uuid.NewString(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session to storage: %w", err)
	}

	return session, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*game.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session from storage: %w", err)
	}
	return session, nil
}

func (that *gameService) UpdateGame(ctx context.Context, session *game.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
