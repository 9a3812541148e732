// Package evaluator scores positions by counting open lines.
package evaluator

import (
	"sync"

	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
)

// CompleteLine is the weight of a window filled by one player.
const CompleteLine = 1 << 24

// Evaluator holds the precomputed windows for one geometry. It is immutable and safe to share.
type Evaluator struct {
	geometry   entity.Geometry
	windows    []int32 // flat, WinLength indices per window
	weights    []int   // by number of marks in an uncontested window
	cellWeight []int
}

type evaluatorCache struct {
	mu         sync.Mutex
	byGeometry map[entity.Geometry]*Evaluator
}

var cached = &evaluatorCache{byGeometry: make(map[entity.Geometry]*Evaluator)}

// For returns the shared evaluator for a geometry, building it on first use.
func For(geometry entity.Geometry) *Evaluator {
	cached.mu.Lock()
	defer cached.mu.Unlock()

	if ev, ok := cached.byGeometry[geometry]; ok {
		return ev
	}

	ev := New(geometry)
	cached.byGeometry[geometry] = ev

	return ev
}

func New(geometry entity.Geometry) *Evaluator {
	ev := &Evaluator{
		geometry:   geometry,
		weights:    buildWeights(geometry.WinLength),
		cellWeight: make([]int, geometry.Rows*geometry.Cols),
	}
	ev.windows = buildWindows(geometry)

	for _, idx := range ev.windows {
		ev.cellWeight[idx]++
	}

	return ev
}

// buildWeights - 0, 1, 4, 32, 256, ... by mark count; a complete line dominates everything.
func buildWeights(winLength int) []int {
	weights := make([]int, winLength+1)
	for k := 1; k < winLength; k++ {
		if k == 1 {
			weights[k] = 1
			continue
		}
		weights[k] = 4 << (3 * (k - 2))
	}
	weights[winLength] = CompleteLine

	return weights
}

func buildWindows(geometry entity.Geometry) []int32 {
	var windows []int32
	n := geometry.WinLength

	directions := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, dir := range directions {
		for row := 0; row < geometry.Rows; row++ {
			for col := 0; col < geometry.Cols; col++ {
				endRow := row + dir[0]*(n-1)
				endCol := col + dir[1]*(n-1)
				if endRow < 0 || endRow >= geometry.Rows || endCol < 0 || endCol >= geometry.Cols {
					continue
				}

				for k := 0; k < n; k++ {
					windows = append(windows, int32((row+dir[0]*k)*geometry.Cols+col+dir[1]*k))
				}
			}
		}
	}

	return windows
}

func (that *Evaluator) Geometry() entity.Geometry {
	return that.geometry
}

// WindowCount is the number of win-length windows on the board.
func (that *Evaluator) WindowCount() int {
	return len(that.windows) / that.geometry.WinLength
}

// Score - sum over open windows, positive for player. A window holding both colours contributes zero,
// so Score(b, Player1) == -Score(b, Player2) for every board.
func (that *Evaluator) Score(b *board.Board, player entity.Cell) int {
	total := 0
	n := that.geometry.WinLength

	for start := 0; start < len(that.windows); start += n {
		ones, twos := 0, 0
		for _, idx := range that.windows[start : start+n] {
			switch b.AtIndex(int(idx)) {
			case entity.Player1:
				ones++
			case entity.Player2:
				twos++
			}
		}

		switch {
		case ones > 0 && twos > 0:
		case ones > 0:
			total += that.weights[ones]
		case twos > 0:
			total -= that.weights[twos]
		}
	}

	if player == entity.Player2 {
		return -total
	}

	return total
}

// ScoreAfter scores the position after a resolved move without keeping it on the board.
func (that *Evaluator) ScoreAfter(b *board.Board, move entity.Move, player entity.Cell) int {
	b.Set(move.Row, move.Col, move.Player)
	score := that.Score(b, player)
	b.Set(move.Row, move.Col, entity.Empty)

	return score
}

// Threats counts windows where player is one mark short of a line and the rest is empty.
func (that *Evaluator) Threats(b *board.Board, player entity.Cell) int {
	threats := 0
	n := that.geometry.WinLength

	for start := 0; start < len(that.windows); start += n {
		own, empty := 0, 0
		for _, idx := range that.windows[start : start+n] {
			switch b.AtIndex(int(idx)) {
			case player:
				own++
			case entity.Empty:
				empty++
			}
		}

		if own == n-1 && empty == 1 {
			threats++
		}
	}

	return threats
}

// CellWeight is the number of windows through a cell; central cells weigh more.
func (that *Evaluator) CellWeight(row, col int) int {
	return that.cellWeight[row*that.geometry.Cols+col]
}
