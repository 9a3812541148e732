package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuelshammer/LogicCastle-sub010/internal/config"
	"github.com/kuelshammer/LogicCastle-sub010/internal/repository"
	"github.com/kuelshammer/LogicCastle-sub010/internal/repository/storage"
	"github.com/kuelshammer/LogicCastle-sub010/internal/service"
	"github.com/kuelshammer/LogicCastle-sub010/internal/usecase"
	"github.com/kuelshammer/LogicCastle-sub010/transport/rest"
	"github.com/kuelshammer/LogicCastle-sub010/transport/websocket"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrUnknownStorage = errors.New("unknown storage backend")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sessionRepo, closeStorage, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameService := service.NewGameService(sessionRepo)
	botService := service.NewBotService(logger, conf.AI.Seed)
	gameManager := usecase.NewGameManager(logger, gameService, botService, conf)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
		httpErrCh <- rest.New(logger, gameManager, websocket.New(logger, gameManager)).Start(ctx, conf.HTTPPort)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return <-httpErrCh
	}
}

func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageMemory, "":
		return repository.NewMemorySessionRepository(), func() error { return nil }, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SessionTTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStorage, conf.Storage)
	}
}
