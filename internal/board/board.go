// Package board holds the fixed-geometry grid shared by every game variant.
package board

import "github.com/kuelshammer/LogicCastle-sub010/internal/entity"

// Board is a row-major grid with row 0 at the top. Dimensions never change after New.
type Board struct {
	rows    int
	cols    int
	cells   []entity.Cell
	colFill []int
	filled  int
}

func New(rows, cols int) *Board {
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   make([]entity.Cell, rows*cols),
		colFill: make([]int, cols),
	}
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Cols() int {
	return that.cols
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < that.rows && col < that.cols
}

func (that *Board) At(row, col int) entity.Cell {
	return that.cells[that.Index(row, col)]
}

// AtIndex reads a cell by its row-major index.
func (that *Board) AtIndex(idx int) entity.Cell {
	return that.cells[idx]
}

func (that *Board) Index(row, col int) int {
	return row*that.cols + col
}

// Set is the single mutation entry point; it keeps the fill counters consistent.
func (that *Board) Set(row, col int, value entity.Cell) {
	idx := that.Index(row, col)
	prev := that.cells[idx]
	if prev == value {
		return
	}

	switch {
	case prev == entity.Empty:
		that.filled++
		that.colFill[col]++
	case value == entity.Empty:
		that.filled--
		that.colFill[col]--
	}

	that.cells[idx] = value
}

// ColumnFill is the number of occupied cells in a column.
func (that *Board) ColumnFill(col int) int {
	return that.colFill[col]
}

// LandingRow is the row a dropped mark would occupy, or -1 when the column is full.
func (that *Board) LandingRow(col int) int {
	return that.rows - 1 - that.colFill[col]
}

func (that *Board) Filled() int {
	return that.filled
}

func (that *Board) IsFull() bool {
	return that.filled == len(that.cells)
}

func (that *Board) IsEmptyBoard() bool {
	return that.filled == 0
}

func (that *Board) Clone() *Board {
	clone := &Board{
		rows:    that.rows,
		cols:    that.cols,
		cells:   make([]entity.Cell, len(that.cells)),
		colFill: make([]int, len(that.colFill)),
		filled:  that.filled,
	}
	copy(clone.cells, that.cells)
	copy(clone.colFill, that.colFill)

	return clone
}

// CopyFrom overwrites the board with src, reusing storage when the geometry matches.
func (that *Board) CopyFrom(src *Board) {
	if that.rows != src.rows || that.cols != src.cols {
		that.rows = src.rows
		that.cols = src.cols
		that.cells = make([]entity.Cell, len(src.cells))
		that.colFill = make([]int, len(src.colFill))
	}

	copy(that.cells, src.cells)
	copy(that.colFill, src.colFill)
	that.filled = src.filled
}

func (that *Board) Equal(other *Board) bool {
	if that.rows != other.rows || that.cols != other.cols {
		return false
	}

	for i, cell := range that.cells {
		if other.cells[i] != cell {
			return false
		}
	}

	return true
}

// Snapshot returns a detached copy of the grid for rendering.
func (that *Board) Snapshot() [][]entity.Cell {
	grid := make([][]entity.Cell, that.rows)
	for row := range grid {
		grid[row] = make([]entity.Cell, that.cols)
		copy(grid[row], that.cells[row*that.cols:(row+1)*that.cols])
	}

	return grid
}
