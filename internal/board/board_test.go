package board

import (
	"testing"

	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// When: creating a connect four board
	b := New(6, 7)

	// Then: every cell is empty and the counters are zero
	assert.Equal(t, 6, b.Rows())
	assert.Equal(t, 7, b.Cols())
	assert.True(t, b.IsEmptyBoard())
	assert.False(t, b.IsFull())
	for col := 0; col < b.Cols(); col++ {
		assert.Equal(t, 5, b.LandingRow(col))
	}
}

func TestBoard_Set(t *testing.T) {
	t.Run("Placing and clearing keeps counters consistent", func(t *testing.T) {
		// Given: an empty board
		b := New(3, 3)

		// When: placing two marks in one column and clearing one
		b.Set(2, 1, entity.Player1)
		b.Set(1, 1, entity.Player2)
		b.Set(1, 1, entity.Empty)

		// Then: fill counters reflect one mark
		assert.Equal(t, 1, b.Filled())
		assert.Equal(t, 1, b.ColumnFill(1))
		assert.Equal(t, 1, b.LandingRow(1))
	})

	t.Run("Overwriting a mark does not double count", func(t *testing.T) {
		// Given: a board with one mark
		b := New(3, 3)
		b.Set(0, 0, entity.Player1)

		// When: replacing it with the other player's mark
		b.Set(0, 0, entity.Player2)

		// Then: only one cell is filled
		assert.Equal(t, 1, b.Filled())
		assert.Equal(t, entity.Player2, b.At(0, 0))
	})

	t.Run("Full board", func(t *testing.T) {
		// Given: a 2x2 board
		b := New(2, 2)

		// When: every cell is filled
		b.Set(0, 0, entity.Player1)
		b.Set(0, 1, entity.Player2)
		b.Set(1, 0, entity.Player2)
		b.Set(1, 1, entity.Player1)

		// Then: the board reports full and no landing row remains
		assert.True(t, b.IsFull())
		assert.Equal(t, -1, b.LandingRow(0))
	})
}

func TestBoard_CloneAndCopy(t *testing.T) {
	t.Run("Clone is independent", func(t *testing.T) {
		// Given: a board with a mark
		b := New(4, 4)
		b.Set(3, 0, entity.Player1)

		// When: cloning and mutating the clone
		clone := b.Clone()
		clone.Set(3, 1, entity.Player2)

		// Then: the original is untouched
		assert.Equal(t, entity.Empty, b.At(3, 1))
		assert.Equal(t, 1, b.Filled())
		assert.False(t, b.Equal(clone))
	})

	t.Run("CopyFrom reuses storage and matches the source", func(t *testing.T) {
		// Given: a source board and a scratch board
		src := New(4, 4)
		src.Set(3, 2, entity.Player2)
		scratch := New(4, 4)
		scratch.Set(0, 0, entity.Player1)

		// When: copying the source into the scratch board
		scratch.CopyFrom(src)

		// Then: both boards are equal cell-for-cell
		require.True(t, scratch.Equal(src))
		assert.Equal(t, src.Filled(), scratch.Filled())
		assert.Equal(t, src.ColumnFill(2), scratch.ColumnFill(2))
	})
}

func TestBoard_Snapshot(t *testing.T) {
	// Given: a board with marks
	b := New(2, 3)
	b.Set(1, 2, entity.Player1)

	// When: taking a snapshot and mutating it
	grid := b.Snapshot()
	grid[1][2] = entity.Player2

	// Then: the snapshot is detached from the board
	assert.Equal(t, entity.Player1, b.At(1, 2))
	assert.Len(t, grid, 2)
	assert.Len(t, grid[0], 3)
}
