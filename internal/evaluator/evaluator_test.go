package evaluator

import (
	"math/rand"
	"testing"

	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	connect4 = entity.Geometry{Rows: 6, Cols: 7, WinLength: 4, Gravity: true}
	gomoku   = entity.Geometry{Rows: 15, Cols: 15, WinLength: 5}
)

func TestFor(t *testing.T) {
	t.Run("Shares one evaluator per geometry", func(t *testing.T) {
		// When:
		first := For(connect4)
		second := For(connect4)

		// Then:
		assert.Same(t, first, second)
		assert.NotSame(t, first, For(gomoku))
	})

	t.Run("Counts every window of the classic board", func(t *testing.T) {
		// Then: 24 horizontal, 21 vertical and 12 per diagonal direction
		assert.Equal(t, 69, New(connect4).WindowCount())
	})
}

func TestEvaluator_Score(t *testing.T) {
	ev := New(connect4)

	t.Run("Empty board scores zero", func(t *testing.T) {
		b := board.New(6, 7)

		assert.Zero(t, ev.Score(b, entity.Player1))
		assert.Zero(t, ev.Score(b, entity.Player2))
	})

	t.Run("Is antisymmetric between the players", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 50; i++ {
			// Given: a random position, legal or not
			b := board.New(6, 7)
			for j := 0; j < 20; j++ {
				b.Set(rng.Intn(6), rng.Intn(7), entity.Cell(rng.Intn(3)))
			}

			// Then:
			assert.Equal(t, -ev.Score(b, entity.Player2), ev.Score(b, entity.Player1))
		}
	})

	t.Run("Central cells are worth more than edge cells", func(t *testing.T) {
		// Given:
		centre := board.New(6, 7)
		centre.Set(5, 3, entity.Player1)
		edge := board.New(6, 7)
		edge.Set(5, 0, entity.Player1)

		// Then:
		assert.Greater(t, ev.Score(centre, entity.Player1), ev.Score(edge, entity.Player1))
		assert.Greater(t, ev.CellWeight(2, 3), ev.CellWeight(0, 0))
	})

	t.Run("Contested windows contribute nothing", func(t *testing.T) {
		// Given: a 1x4 board has exactly one window
		single := New(entity.Geometry{Rows: 1, Cols: 4, WinLength: 4})
		b := board.New(1, 4)
		b.Set(0, 0, entity.Player1)
		b.Set(0, 3, entity.Player2)

		// Then:
		assert.Zero(t, single.Score(b, entity.Player1))
	})

	t.Run("A complete line dominates", func(t *testing.T) {
		b := board.New(6, 7)
		for col := 0; col < 4; col++ {
			b.Set(5, col, entity.Player2)
		}

		assert.GreaterOrEqual(t, ev.Score(b, entity.Player2), CompleteLine)
	})
}

func TestEvaluator_ScoreAfter(t *testing.T) {
	t.Run("Leaves the board untouched", func(t *testing.T) {
		// Given:
		ev := New(gomoku)
		b := board.New(15, 15)
		b.Set(7, 7, entity.Player1)
		before := b.Clone()

		// When:
		score := ev.ScoreAfter(b, entity.Move{Row: 7, Col: 8, Player: entity.Player1}, entity.Player1)

		// Then:
		assert.Greater(t, score, ev.Score(b, entity.Player1))
		assert.True(t, before.Equal(b))
	})
}

func TestEvaluator_Threats(t *testing.T) {
	ev := New(connect4)

	t.Run("Counts open three-of-four windows", func(t *testing.T) {
		// Given: three in the bottom row with both ends open
		b := board.New(6, 7)
		for col := 1; col <= 3; col++ {
			b.Set(5, col, entity.Player1)
		}

		// Then: windows 0-3 and 1-4
		assert.Equal(t, 2, ev.Threats(b, entity.Player1))
		assert.Zero(t, ev.Threats(b, entity.Player2))
	})

	t.Run("Blocked windows are no threat", func(t *testing.T) {
		b := board.New(6, 7)
		for col := 1; col <= 3; col++ {
			b.Set(5, col, entity.Player1)
		}
		b.Set(5, 0, entity.Player2)
		b.Set(5, 4, entity.Player2)

		require.Zero(t, ev.Threats(b, entity.Player1))
	})
}
