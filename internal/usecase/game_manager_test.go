package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/repository"
	"github.com/kuelshammer/LogicCastle-sub010/internal/search"
	"github.com/kuelshammer/LogicCastle-sub010/internal/service"
	mockedUseCase "github.com/kuelshammer/LogicCastle-sub010/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

type testPresets map[entity.Variant]entity.GameConfig

func (that testPresets) GameConfig(variant entity.Variant) (entity.GameConfig, error) {
	config, ok := that[variant]
	if !ok {
		return entity.GameConfig{}, fmt.Errorf("%w: %q", apperror.ErrUnknownVariant, variant)
	}
	return config, nil
}

func defaultPresets() testPresets {
	return testPresets{
		entity.VariantConnect4: {
			Variant:  entity.VariantConnect4,
			Geometry: entity.Geometry{Rows: 6, Cols: 7, WinLength: 4, Gravity: true},
			AI: entity.AIConfig{
				Strategy:    search.NameMinimax,
				SearchDepth: 6,
				TimeBudget:  2 * time.Second,
				Seed:        1,
			},
		},
		entity.VariantGomoku: {
			Variant:  entity.VariantGomoku,
			Geometry: entity.Geometry{Rows: 15, Cols: 15, WinLength: 5},
			AI: entity.AIConfig{
				Strategy:        search.NameMonteCarlo,
				Rollouts:        8,
				CandidateRadius: 1,
				Workers:         2,
				TimeBudget:      2 * time.Second,
				Seed:            1,
			},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager() *GameManager {
	logger := discardLogger()
	games := service.NewGameService(repository.NewMemorySessionRepository())

	return NewGameManager(logger, games, service.NewBotService(logger, 1), defaultPresets())
}

func newConnect4(t *testing.T, manager *GameManager, cols ...int) game.View {
	t.Helper()

	view, err := manager.NewSession(context.Background(), entity.VariantConnect4, Options{})
	require.NoError(t, err)

	for _, col := range cols {
		result, err := manager.ApplyHumanMove(context.Background(), view.ID, entity.ColumnMove(col))
		require.NoError(t, err)
		require.True(t, result.Accepted)
	}

	return view
}

func TestGameManager_NewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates an empty session from the variant defaults", func(t *testing.T) {
		// Given:
		manager := newManager()

		// When:
		view, err := manager.NewSession(ctx, entity.VariantConnect4, Options{})

		// Then:
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.Equal(t, entity.VariantConnect4, view.Variant)
		assert.Equal(t, entity.Player1, view.CurrentPlayer)
		assert.Len(t, view.Board, 6)
		assert.Len(t, view.LegalMoves, 7)
	})

	t.Run("Applies the per-session overrides", func(t *testing.T) {
		// Given:
		manager := newManager()
		opts := Options{Difficulty: entity.DifficultyEasy, StartingPlayer: entity.Player2, Strategy: search.NameHeuristic}

		// When:
		view, err := manager.NewSession(ctx, entity.VariantConnect4, opts)
		require.NoError(t, err)

		// Then:
		assert.Equal(t, entity.Player2, view.CurrentPlayer)
	})

	t.Run("Rejects bad options", func(t *testing.T) {
		manager := newManager()

		_, err := manager.NewSession(ctx, "chess", Options{})
		assert.ErrorIs(t, err, apperror.ErrUnknownVariant)

		_, err = manager.NewSession(ctx, entity.VariantConnect4, Options{Difficulty: "nightmare"})
		assert.ErrorIs(t, err, apperror.ErrUnknownDifficulty)

		_, err = manager.NewSession(ctx, entity.VariantConnect4, Options{Strategy: "oracle"})
		assert.ErrorIs(t, err, apperror.ErrUnknownStrategy)

		_, err = manager.NewSession(ctx, entity.VariantConnect4, Options{StartingPlayer: entity.Cell(7)})
		assert.ErrorIs(t, err, apperror.ErrUnknownPlayer)
	})

	t.Run("Returns error if storage fails", func(t *testing.T) {
		// Given:
		mockGames := mockedUseCase.NewMockgameService(t)
		mockGames.EXPECT().
			CreateGame(mock.Anything, mock.AnythingOfType("entity.GameConfig")).
			Return(nil, errRedisDown).
			Once()
		manager := NewGameManager(discardLogger(), mockGames, service.NewBotService(discardLogger(), 1), defaultPresets())

		// When:
		_, err := manager.NewSession(ctx, entity.VariantGomoku, Options{})

		// Then:
		assert.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_ApplyHumanMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepts a legal move", func(t *testing.T) {
		// Given:
		manager := newManager()
		view := newConnect4(t, manager)

		// When:
		result, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(3))

		// Then:
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, entity.Move{Row: 5, Col: 3, Player: entity.Player1}, result.Move)
		assert.Equal(t, entity.InProgress(), result.Terminal)
		assert.NoError(t, result.Err)
	})

	t.Run("Rejects an illegal move without failing", func(t *testing.T) {
		// Given: column 0 is full
		manager := newManager()
		view := newConnect4(t, manager, 0, 0, 0, 0, 0, 0)

		// When:
		result, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(0))

		// Then:
		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.ErrorIs(t, result.Err, apperror.ErrColumnFull)
		assert.ErrorIs(t, result.Err, apperror.ErrIllegalMove)
		assert.NotEmpty(t, result.Error)

		snapshot, err := manager.Snapshot(ctx, view.ID)
		require.NoError(t, err)
		assert.Len(t, snapshot.History, 6)
	})

	t.Run("Reports the win and locks the session", func(t *testing.T) {
		// Given:
		manager := newManager()
		view := newConnect4(t, manager, 0, 6, 1, 6, 2, 6)

		// When:
		result, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(3))
		require.NoError(t, err)
		after, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(5))
		require.NoError(t, err)

		// Then:
		assert.Equal(t, entity.WinFor(entity.Player1), result.Terminal)
		assert.False(t, after.Accepted)
		assert.ErrorIs(t, after.Err, apperror.ErrGameFinished)
	})

	t.Run("Carries the session as it stood after the move", func(t *testing.T) {
		// Given:
		manager := newManager()
		view := newConnect4(t, manager)

		// When: a second move lands before the first result is used
		first, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(3))
		require.NoError(t, err)
		second, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(4))
		require.NoError(t, err)

		// Then: each result holds its own position
		require.NotNil(t, first.View)
		assert.Len(t, first.View.History, 1)
		assert.Equal(t, &first.Move, first.View.LastMove)
		assert.Equal(t, entity.Player2, first.View.CurrentPlayer)

		require.NotNil(t, second.View)
		assert.Len(t, second.View.History, 2)
		assert.Equal(t, &second.Move, second.View.LastMove)
	})

	t.Run("Rejected moves carry no session", func(t *testing.T) {
		// Given:
		manager := newManager()
		view := newConnect4(t, manager)

		// When:
		result, err := manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(9))

		// Then:
		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.Nil(t, result.View)
	})

	t.Run("Unknown sessions are not found", func(t *testing.T) {
		_, err := newManager().ApplyHumanMove(ctx, "missing", entity.ColumnMove(0))

		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Returns error if the update fails", func(t *testing.T) {
		// Given:
		session, err := game.NewSession("s1", defaultPresets()[entity.VariantConnect4])
		require.NoError(t, err)

		mockGames := mockedUseCase.NewMockgameService(t)
		mockGames.EXPECT().GetGameByID(mock.Anything, "s1").Return(session, nil).Once()
		mockGames.EXPECT().UpdateGame(mock.Anything, session).Return(errRedisDown).Once()
		manager := NewGameManager(discardLogger(), mockGames, service.NewBotService(discardLogger(), 1), defaultPresets())

		// When:
		_, err = manager.ApplyHumanMove(ctx, "s1", entity.ColumnMove(2))

		// Then:
		assert.ErrorIs(t, err, errRedisDown)
	})
}

func TestGameManager_RequestAIMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Plays for the player to move", func(t *testing.T) {
		// Given:
		manager := newManager()
		view := newConnect4(t, manager, 3)

		// When:
		result, err := manager.RequestAIMove(ctx, view.ID)

		// Then:
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, entity.Player2, result.Move.Player)
		assert.NotEmpty(t, result.Stage)
		require.NotNil(t, result.View)
		assert.Equal(t, &result.Move, result.View.LastMove)

		snapshot, err := manager.Snapshot(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.Player1, snapshot.CurrentPlayer)
		assert.Len(t, snapshot.History, 2)
	})

	t.Run("Takes the immediate win", func(t *testing.T) {
		manager := newManager()
		view := newConnect4(t, manager, 0, 6, 1, 6, 2, 6)

		result, err := manager.RequestAIMove(ctx, view.ID)

		require.NoError(t, err)
		assert.Equal(t, service.StageWin, result.Stage)
		assert.Equal(t, entity.WinFor(entity.Player1), result.Terminal)
	})

	t.Run("Flags a double threat", func(t *testing.T) {
		manager := newManager()
		view := newConnect4(t, manager, 0, 2, 0, 3, 6, 4)

		result, err := manager.RequestAIMove(ctx, view.ID)

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.True(t, result.DoubleThreat)
		assert.Len(t, result.Threats, 2)
	})

	t.Run("Plays free-placement games with Monte Carlo", func(t *testing.T) {
		// Given:
		manager := newManager()
		view, err := manager.NewSession(ctx, entity.VariantGomoku, Options{})
		require.NoError(t, err)
		_, err = manager.ApplyHumanMove(ctx, view.ID, entity.CellMove(7, 7))
		require.NoError(t, err)

		// When:
		result, err := manager.RequestAIMove(ctx, view.ID)

		// Then:
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, service.StageSearch, result.Stage)
		assert.LessOrEqual(t, abs(result.Move.Row-7), 1)
		assert.LessOrEqual(t, abs(result.Move.Col-7), 1)
	})

	t.Run("Finished games are rejected", func(t *testing.T) {
		manager := newManager()
		view := newConnect4(t, manager, 0, 6, 1, 6, 2, 6, 3)

		result, err := manager.RequestAIMove(ctx, view.ID)

		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.ErrorIs(t, result.Err, apperror.ErrGameFinished)
	})
}

func TestGameManager_History(t *testing.T) {
	ctx := context.Background()

	t.Run("Undo, redo and reset", func(t *testing.T) {
		// Given:
		manager := newManager()
		view := newConnect4(t, manager, 3, 4)

		// When: undoing the last move
		undone, err := manager.Undo(ctx, view.ID)
		require.NoError(t, err)

		// Then:
		assert.Len(t, undone.History, 1)
		assert.Equal(t, entity.Player2, undone.CurrentPlayer)
		assert.True(t, undone.CanRedo)

		// When: redoing it
		redone, err := manager.Redo(ctx, view.ID)
		require.NoError(t, err)

		// Then:
		assert.Len(t, redone.History, 2)
		assert.False(t, redone.CanRedo)

		// When: resetting
		reset, err := manager.Reset(ctx, view.ID)
		require.NoError(t, err)

		// Then:
		assert.Empty(t, reset.History)
		assert.Equal(t, entity.Player1, reset.CurrentPlayer)
	})

	t.Run("Undo with no history is surfaced", func(t *testing.T) {
		manager := newManager()
		view := newConnect4(t, manager)

		_, err := manager.Undo(ctx, view.ID)

		assert.ErrorIs(t, err, apperror.ErrEmptyHistory)
	})

	t.Run("Deleted sessions are gone", func(t *testing.T) {
		manager := newManager()
		view := newConnect4(t, manager)

		require.NoError(t, manager.Delete(ctx, view.ID))

		_, err := manager.Snapshot(ctx, view.ID)
		assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.ErrorIs(t, manager.Delete(ctx, view.ID), apperror.ErrSessionNotFound)
	})
}

func TestGameManager_Concurrency(t *testing.T) {
	t.Run("Moves on one session are serialised", func(t *testing.T) {
		// Given:
		ctx := context.Background()
		manager := newManager()
		view := newConnect4(t, manager)

		// When: many callers race on the same session
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(col int) {
				defer wg.Done()
				_, _ = manager.ApplyHumanMove(ctx, view.ID, entity.ColumnMove(col%7))
				_, _ = manager.Snapshot(ctx, view.ID)
			}(i)
		}
		wg.Wait()

		// Then: every accepted move alternated players
		snapshot, err := manager.Snapshot(ctx, view.ID)
		require.NoError(t, err)
		for i, move := range snapshot.History {
			if i%2 == 0 {
				assert.Equal(t, entity.Player1, move.Player)
			} else {
				assert.Equal(t, entity.Player2, move.Player)
			}
		}
		assert.Empty(t, manager.locks)
	})
}

func abs(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
