package search

import (
	"context"
	"math/rand"
	"sync"

	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/evaluator"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
)

// Heuristic plays the move with the best static score one ply ahead.
type Heuristic struct {
	radius int
}

func NewHeuristic(radius int) *Heuristic {
	return &Heuristic{radius: radius}
}

func (that *Heuristic) Name() string {
	return NameHeuristic
}

func (that *Heuristic) BestMove(ctx context.Context, session *game.Session) (entity.Move, bool) {
	if session.IsFinished() || ctx.Err() != nil {
		return entity.Move{}, false
	}

	r := session.Rules()
	b := session.Board().Clone()
	player := session.CurrentPlayer()
	ev := evaluator.For(r.Geometry())

	moves := candidates(nil, r, b, that.radius)
	orderCentreFirst(moves, ev)

	var best entity.Move
	bestScore, found := 0, false

	for _, move := range moves {
		move.Player = player
		if score := ev.ScoreAfter(b, move, player); !found || score > bestScore {
			best, bestScore, found = move, score, true
		}
	}

	return best, found
}

// Random plays a uniformly random legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (that *Random) Name() string {
	return NameRandom
}

func (that *Random) BestMove(ctx context.Context, session *game.Session) (entity.Move, bool) {
	if ctx.Err() != nil {
		return entity.Move{}, false
	}

	moves := session.LegalMoves()
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	that.mu.Lock()
	move := moves[that.rng.Intn(len(moves))]
	that.mu.Unlock()

	move.Player = session.CurrentPlayer()

	return move, true
}
