package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/search"
	"github.com/kuelshammer/LogicCastle-sub010/internal/service"
)

type gameService interface {
	CreateGame(ctx context.Context, config entity.GameConfig) (*game.Session, error)
	UpdateGame(ctx context.Context, session *game.Session) error
	DeleteGame(ctx context.Context, id string) error
	GetGameByID(ctx context.Context, id string) (*game.Session, error)
}

type botService interface {
	ChooseMove(ctx context.Context, session *game.Session, strategy search.Strategy) (service.Decision, error)
}

type presets interface {
	GameConfig(variant entity.Variant) (entity.GameConfig, error)
}

// Options are the per-session overrides of the variant defaults.
type Options struct {
	Difficulty     entity.Difficulty `json:"difficulty,omitempty"`
	StartingPlayer entity.Cell       `json:"starting_player,omitempty"`
	Strategy       string            `json:"strategy,omitempty"`
}

// MoveResult reports a human or AI move. Illegal moves are rejected with Accepted false and Err set,
// never returned as errors.
type MoveResult struct {
	Accepted     bool                  `json:"accepted"`
	Move         entity.Move           `json:"move"`
	Terminal     entity.TerminalStatus `json:"terminal"`
	Err          error                 `json:"-"`
	Error        string                `json:"error,omitempty"`
	Stage        service.Stage         `json:"stage,omitempty"`
	DoubleThreat bool                  `json:"double_threat,omitempty"`
	Threats      []entity.Move         `json:"threats,omitempty"`

	// View is the session right after an accepted move, taken under the same lock.
	View *game.View `json:"-"`
}

func rejected(status entity.TerminalStatus, err error) MoveResult {
	return MoveResult{Terminal: status, Err: err, Error: err.Error()}
}

// GameManager is the entry point for the rendering collaborator. Operations on one session are serialised.
type GameManager struct {
	logger *slog.Logger

	games   gameService
	bot     botService
	presets presets

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the map once nobody holds or waits for it.
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewGameManager(logger *slog.Logger, games gameService, bot botService, presets presets) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		games:   games,
		bot:     bot,
		presets: presets,

		locks: make(map[string]*sessionLock),
	}
}

func (that *GameManager) NewSession(ctx context.Context, variant entity.Variant, opts Options) (game.View, error) {
	config, err := that.presets.GameConfig(variant)
	if err != nil {
		return game.View{}, fmt.Errorf("failed to load variant config: %w", err)
	}

	if config, err = config.WithDifficulty(opts.Difficulty); err != nil {
		return game.View{}, err
	}

	if opts.StartingPlayer != entity.Empty {
		config.StartingPlayer = opts.StartingPlayer
	}

	if opts.Strategy != "" {
		config.AI.Strategy = opts.Strategy
	}

	if _, err = search.New(config.AI.Strategy, config.AI, config.AI.Seed); err != nil {
		return game.View{}, err
	}

	session, err := that.games.CreateGame(ctx, config)
	if err != nil {
		return game.View{}, fmt.Errorf("failed create game: %w", err)
	}

	that.logger.Info("session created", "session", session.ID(), "variant", variant, "strategy", config.AI.Strategy)

	return session.View(), nil
}

func (that *GameManager) ApplyHumanMove(ctx context.Context, id string, move entity.Move) (MoveResult, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.games.GetGameByID(ctx, id)
	if err != nil {
		return MoveResult{}, fmt.Errorf("failed get game by id: %w", err)
	}

	return that.apply(ctx, session, move)
}

// RequestAIMove runs the decision pipeline for the player to move and plays its choice.
func (that *GameManager) RequestAIMove(ctx context.Context, id string) (MoveResult, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.games.GetGameByID(ctx, id)
	if err != nil {
		return MoveResult{}, fmt.Errorf("failed get game by id: %w", err)
	}

	ai := session.Config().AI
	strategy, err := search.New(ai.Strategy, ai, ai.Seed^int64(len(session.History())))
	if err != nil {
		return MoveResult{}, err
	}

	decision, err := that.bot.ChooseMove(ctx, session, strategy)
	if errors.Is(err, apperror.ErrIllegalMove) || errors.Is(err, apperror.ErrNoAvailableMoves) {
		return rejected(session.Status(), err), nil
	}

	if err != nil {
		return MoveResult{}, fmt.Errorf("failed choose move: %w", err)
	}

	result, err := that.apply(ctx, session, decision.Move)
	if err != nil {
		return result, err
	}

	result.Stage = decision.Stage
	result.DoubleThreat = decision.DoubleThreat
	result.Threats = decision.Threats

	return result, nil
}

func (that *GameManager) apply(ctx context.Context, session *game.Session, move entity.Move) (MoveResult, error) {
	status, err := session.Apply(move)
	if errors.Is(err, apperror.ErrIllegalMove) {
		return rejected(status, err), nil
	}

	if err != nil {
		return MoveResult{}, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.games.UpdateGame(ctx, session); err != nil {
		return MoveResult{}, fmt.Errorf("failed update game: %w", err)
	}

	played, _ := session.LastMove()
	view := session.View()

	return MoveResult{Accepted: true, Move: played, Terminal: status, View: &view}, nil
}

func (that *GameManager) Snapshot(ctx context.Context, id string) (game.View, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.games.GetGameByID(ctx, id)
	if err != nil {
		return game.View{}, fmt.Errorf("failed get game by id: %w", err)
	}

	return session.View(), nil
}

func (that *GameManager) Reset(ctx context.Context, id string) (game.View, error) {
	return that.mutate(ctx, id, func(session *game.Session) error {
		session.Reset()
		return nil
	})
}

func (that *GameManager) Undo(ctx context.Context, id string) (game.View, error) {
	return that.mutate(ctx, id, func(session *game.Session) error {
		_, err := session.Undo()
		return err
	})
}

func (that *GameManager) Redo(ctx context.Context, id string) (game.View, error) {
	return that.mutate(ctx, id, func(session *game.Session) error {
		_, _, err := session.Redo()
		return err
	})
}

func (that *GameManager) Delete(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if _, err := that.games.GetGameByID(ctx, id); err != nil {
		return fmt.Errorf("failed get game by id: %w", err)
	}

	if err := that.games.DeleteGame(ctx, id); err != nil {
		return fmt.Errorf("failed delete game: %w", err)
	}

	return nil
}

// mutate applies change under the session lock and saves the result. The session is saved only when change succeeds.
func (that *GameManager) mutate(ctx context.Context, id string, change func(session *game.Session) error) (game.View, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.games.GetGameByID(ctx, id)
	if err != nil {
		return game.View{}, fmt.Errorf("failed get game by id: %w", err)
	}

	if err = change(session); err != nil {
		return session.View(), err
	}

	if err = that.games.UpdateGame(ctx, session); err != nil {
		return game.View{}, fmt.Errorf("failed update game: %w", err)
	}

	return session.View(), nil
}

func (that *GameManager) lock(id string) func() {
	that.mu.Lock()
	held, ok := that.locks[id]
	if !ok {
		held = &sessionLock{}
		that.locks[id] = held
	}
	held.refs++
	that.mu.Unlock()

	held.Lock()

	return func() {
		held.Unlock()

		that.mu.Lock()
		held.refs--
		if held.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}
