// Package rules validates and applies moves and detects terminal positions.
package rules

import (
	"fmt"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
)

// Axes are the four line directions as (row, col) steps.
var Axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal
	{1, -1}, // anti-diagonal
}

type Rules struct {
	geometry entity.Geometry
}

func New(geometry entity.Geometry) (Rules, error) {
	if err := geometry.Validate(); err != nil {
		return Rules{}, err
	}

	return Rules{geometry: geometry}, nil
}

func (that Rules) Geometry() entity.Geometry {
	return that.geometry
}

func (that Rules) NewBoard() *board.Board {
	return board.New(that.geometry.Rows, that.geometry.Cols)
}

// Resolve - checks that the move is legal on the board and fills in the landing row for gravity games.
func (that Rules) Resolve(b *board.Board, move entity.Move) (entity.Move, error) {
	if that.geometry.Gravity {
		if move.Col < 0 || move.Col >= b.Cols() {
			return move, fmt.Errorf("%w: column %d", apperror.ErrOutOfRange, move.Col)
		}

		row := b.LandingRow(move.Col)
		if row < 0 {
			return move, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, move.Col)
		}

		move.Row = row

		return move, nil
	}

	if !b.InBounds(move.Row, move.Col) {
		return move, fmt.Errorf("%w: cell (%d,%d)", apperror.ErrOutOfRange, move.Row, move.Col)
	}

	if b.At(move.Row, move.Col) != entity.Empty {
		return move, fmt.Errorf("%w: cell (%d,%d)", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	return move, nil
}

// Place - resolves the move and writes the mover's mark.
func (that Rules) Place(b *board.Board, move entity.Move) (entity.Move, error) {
	if !move.Player.IsPlayer() {
		return move, fmt.Errorf("%w: %d", apperror.ErrUnknownPlayer, move.Player)
	}

	resolved, err := that.Resolve(b, move)
	if err != nil {
		return move, err
	}

	b.Set(resolved.Row, resolved.Col, resolved.Player)

	return resolved, nil
}

// Remove - reverts a resolved move. Removing anything but the mover's own mark
// (or, for gravity games, a mark that is not on top of its column) is a caller bug.
func (that Rules) Remove(b *board.Board, move entity.Move) {
	if b.At(move.Row, move.Col) != move.Player {
		panic(fmt.Sprintf("rules: remove (%d,%d): cell holds %s, not %s", move.Row, move.Col, b.At(move.Row, move.Col), move.Player))
	}

	if that.geometry.Gravity && b.LandingRow(move.Col)+1 != move.Row {
		panic(fmt.Sprintf("rules: remove (%d,%d): not the top of its column", move.Row, move.Col))
	}

	b.Set(move.Row, move.Col, entity.Empty)
}

// LegalMoves - one move per open column (low to high) for gravity games, every empty cell
// in row-major order otherwise.
func (that Rules) LegalMoves(b *board.Board) []entity.Move {
	return that.AppendLegalMoves(nil, b)
}

// AppendLegalMoves is LegalMoves without allocation when dst has capacity.
func (that Rules) AppendLegalMoves(dst []entity.Move, b *board.Board) []entity.Move {
	dst = dst[:0]

	if that.geometry.Gravity {
		for col := 0; col < b.Cols(); col++ {
			if row := b.LandingRow(col); row >= 0 {
				dst = append(dst, entity.Move{Row: row, Col: col})
			}
		}

		return dst
	}

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if b.At(row, col) == entity.Empty {
				dst = append(dst, entity.Move{Row: row, Col: col})
			}
		}
	}

	return dst
}

// DetectTerminal - scans only the four axes through last; cost is proportional to the win length.
func (that Rules) DetectTerminal(b *board.Board, last entity.Move) entity.TerminalStatus {
	if b.InBounds(last.Row, last.Col) {
		if player := b.At(last.Row, last.Col); player != entity.Empty {
			for _, axis := range Axes {
				if that.runLength(b, last, player, axis) >= that.geometry.WinLength {
					return entity.WinFor(player)
				}
			}
		}
	}

	if b.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// WinningLine returns the cells of the winning run through last, or nil.
func (that Rules) WinningLine(b *board.Board, last entity.Move) []entity.Move {
	if !b.InBounds(last.Row, last.Col) {
		return nil
	}

	player := b.At(last.Row, last.Col)
	if player == entity.Empty {
		return nil
	}

	for _, axis := range Axes {
		if that.runLength(b, last, player, axis) < that.geometry.WinLength {
			continue
		}

		row, col := last.Row, last.Col
		for b.InBounds(row-axis[0], col-axis[1]) && b.At(row-axis[0], col-axis[1]) == player {
			row -= axis[0]
			col -= axis[1]
		}

		var line []entity.Move
		for b.InBounds(row, col) && b.At(row, col) == player {
			line = append(line, entity.Move{Row: row, Col: col, Player: player})
			row += axis[0]
			col += axis[1]
		}

		return line
	}

	return nil
}

// WinningMoves - legal moves that win immediately for player, in LegalMoves order.
// The board is mutated transiently and restored before returning.
func (that Rules) WinningMoves(b *board.Board, player entity.Cell) []entity.Move {
	var wins []entity.Move

	for _, move := range that.LegalMoves(b) {
		move.Player = player
		b.Set(move.Row, move.Col, player)
		status := that.DetectTerminal(b, move)
		b.Set(move.Row, move.Col, entity.Empty)

		if status.IsWinFor(player) {
			wins = append(wins, move)
		}
	}

	return wins
}

// runLength counts the run through from along one axis, capped at the win length.
func (that Rules) runLength(b *board.Board, from entity.Move, player entity.Cell, axis [2]int) int {
	count := 1
	count += that.countDirection(b, from, player, axis[0], axis[1], that.geometry.WinLength-count)
	count += that.countDirection(b, from, player, -axis[0], -axis[1], that.geometry.WinLength-count)

	return count
}

func (that Rules) countDirection(b *board.Board, from entity.Move, player entity.Cell, dRow, dCol, limit int) int {
	count := 0
	row, col := from.Row+dRow, from.Col+dCol

	for count < limit && b.InBounds(row, col) && b.At(row, col) == player {
		count++
		row += dRow
		col += dCol
	}

	return count
}
