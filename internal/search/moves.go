package search

import (
	"slices"

	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/evaluator"
	"github.com/kuelshammer/LogicCastle-sub010/internal/rules"
)

// candidates - legal moves worth searching. Free-placement games with a positive radius keep only
// empty cells within radius (Chebyshev) of an existing mark; on an empty board that is the centre cell.
func candidates(dst []entity.Move, r rules.Rules, b *board.Board, radius int) []entity.Move {
	dst = r.AppendLegalMoves(dst, b)
	if r.Geometry().Gravity || radius <= 0 || len(dst) == 0 {
		return dst
	}

	if b.IsEmptyBoard() {
		dst = dst[:0]
		return append(dst, entity.Move{Row: b.Rows() / 2, Col: b.Cols() / 2})
	}

	kept := dst[:0]
	for _, move := range dst {
		if hasNeighbour(b, move, radius) {
			kept = append(kept, move)
		}
	}

	return kept
}

func hasNeighbour(b *board.Board, move entity.Move, radius int) bool {
	for dRow := -radius; dRow <= radius; dRow++ {
		for dCol := -radius; dCol <= radius; dCol++ {
			row, col := move.Row+dRow, move.Col+dCol
			if b.InBounds(row, col) && b.At(row, col) != entity.Empty {
				return true
			}
		}
	}

	return false
}

// orderCentreFirst sorts moves by the number of windows through their cell, stable on ties.
func orderCentreFirst(moves []entity.Move, ev *evaluator.Evaluator) {
	slices.SortStableFunc(moves, func(a, b entity.Move) int {
		return ev.CellWeight(b.Row, b.Col) - ev.CellWeight(a.Row, a.Col)
	})
}

func containsMove(moves []entity.Move, move entity.Move) bool {
	for _, candidate := range moves {
		if candidate.SameCell(move) {
			return true
		}
	}

	return false
}
