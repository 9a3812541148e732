package search

import (
	"context"

	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/evaluator"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/rules"
)

const (
	winScore = 1 << 30
	infinity = winScore + 1

	// ctx is polled once per this many nodes.
	pollInterval = 1 << 10
)

// Minimax is iterative-deepening negamax with alpha-beta pruning.
type Minimax struct {
	depth    int
	maxNodes int64
	radius   int
}

// NewMinimax - maxNodes <= 0 means no node limit; radius restricts free-placement candidates.
func NewMinimax(depth int, maxNodes int64, radius int) *Minimax {
	return &Minimax{depth: depth, maxNodes: maxNodes, radius: radius}
}

func (that *Minimax) Name() string {
	return NameMinimax
}

// BestMove returns the best move of the deepest fully searched iteration. When the very first
// iteration is interrupted it falls back to the best root move searched so far.
func (that *Minimax) BestMove(ctx context.Context, session *game.Session) (entity.Move, bool) {
	if that.depth <= 0 || session.IsFinished() || ctx.Err() != nil {
		return entity.Move{}, false
	}

	s := newNegamax(ctx, session, that.depth, that.maxNodes, that.radius)
	rootMoves := candidates(nil, s.rules, s.board, that.radius)
	if len(rootMoves) == 0 {
		return entity.Move{}, false
	}
	orderCentreFirst(rootMoves, s.eval)

	var best entity.Move
	found := false

	for depth := 1; depth <= that.depth; depth++ {
		move, score, complete, ok := s.root(rootMoves, depth)
		if complete {
			best, found = move, true
			promote(rootMoves, move)

			if score >= winScore-that.depth || score <= -winScore+that.depth {
				break
			}

			continue
		}

		if !found && ok {
			best, found = move, true
		}

		break
	}

	if found {
		best.Player = session.CurrentPlayer()
	}

	return best, found
}

// promote moves the previous iteration's best move to the front, keeping the rest in order.
func promote(moves []entity.Move, best entity.Move) {
	for i, move := range moves {
		if move.SameCell(best) {
			copy(moves[1:i+1], moves[:i])
			moves[0] = move
			return
		}
	}
}

// negamax is the state of one BestMove call. It owns a private board clone and undoes every move it makes.
type negamax struct {
	ctx      context.Context
	rules    rules.Rules
	eval     *evaluator.Evaluator
	board    *board.Board
	player   entity.Cell
	radius   int
	maxNodes int64

	nodes   int64
	stopped bool
	buffers [][]entity.Move
}

func newNegamax(ctx context.Context, session *game.Session, depth int, maxNodes int64, radius int) *negamax {
	r := session.Rules()

	return &negamax{
		ctx:      ctx,
		rules:    r,
		eval:     evaluator.For(r.Geometry()),
		board:    session.Board().Clone(),
		player:   session.CurrentPlayer(),
		radius:   radius,
		maxNodes: maxNodes,
		buffers:  make([][]entity.Move, depth+1),
	}
}

// root searches one iteration. complete reports whether every root move was searched;
// ok reports whether at least one was.
func (that *negamax) root(moves []entity.Move, depth int) (best entity.Move, bestScore int, complete, ok bool) {
	alpha := -infinity
	bestScore = -infinity

	for _, move := range moves {
		move.Player = that.player
		that.board.Set(move.Row, move.Col, that.player)
		score := -that.search(move, depth-1, 1, -infinity, -alpha)
		that.board.Set(move.Row, move.Col, entity.Empty)

		if that.stopped {
			return best, bestScore, false, ok
		}

		ok = true
		if score > bestScore {
			best, bestScore = move, score
		}
		if score > alpha {
			alpha = score
		}
	}

	return best, bestScore, true, ok
}

// search scores the position after last from the point of view of the player to move.
func (that *negamax) search(last entity.Move, depth, ply, alpha, beta int) int {
	that.nodes++
	if that.maxNodes > 0 && that.nodes > that.maxNodes {
		that.stopped = true
		return 0
	}
	if that.nodes%pollInterval == 0 && that.ctx.Err() != nil {
		that.stopped = true
		return 0
	}

	toMove := last.Player.Opponent()

	status := that.rules.DetectTerminal(that.board, last)
	switch status.Outcome {
	case entity.OutcomeWin:
		// the previous mover just won; faster wins score higher
		return -(winScore - ply)
	case entity.OutcomeDraw:
		return 0
	}

	if depth == 0 {
		return that.eval.Score(that.board, toMove)
	}

	moves := candidates(that.buffers[ply], that.rules, that.board, that.radius)
	orderCentreFirst(moves, that.eval)
	that.buffers[ply] = moves
	if len(moves) == 0 {
		return that.eval.Score(that.board, toMove)
	}

	best := -infinity
	for _, move := range moves {
		move.Player = toMove
		that.board.Set(move.Row, move.Col, toMove)
		score := -that.search(move, depth-1, ply+1, -beta, -alpha)
		that.board.Set(move.Row, move.Col, entity.Empty)

		if that.stopped {
			return 0
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return best
}
