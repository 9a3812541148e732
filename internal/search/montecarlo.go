package search

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/evaluator"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/rules"
)

// MonteCarlo rates each candidate by random playouts from the position it creates.
type MonteCarlo struct {
	rollouts int
	radius   int
	workers  int
	seed     int64
}

// NewMonteCarlo - workers <= 0 uses one worker per CPU.
func NewMonteCarlo(rollouts, radius, workers int, seed int64) *MonteCarlo {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &MonteCarlo{rollouts: rollouts, radius: radius, workers: workers, seed: seed}
}

func (that *MonteCarlo) Name() string {
	return NameMonteCarlo
}

// tally is written by exactly one worker, the one that owns the candidate.
type tally struct {
	played int
	wins   int
	draws  int
}

func (that tally) rate() float64 {
	return (float64(that.wins) + float64(that.draws)/2) / float64(that.played)
}

// BestMove picks the highest win rate, then the most playouts, then the best static score.
// With a fixed seed and enough time for every rollout the choice is reproducible.
func (that *MonteCarlo) BestMove(ctx context.Context, session *game.Session) (entity.Move, bool) {
	if that.rollouts <= 0 || session.IsFinished() || ctx.Err() != nil {
		return entity.Move{}, false
	}

	r := session.Rules()
	root := session.Board().Clone()
	player := session.CurrentPlayer()

	moves := candidates(nil, r, root, that.radius)
	if len(moves) == 0 {
		return entity.Move{}, false
	}

	results := make([]tally, len(moves))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(that.workers, len(moves)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			p := playout{rules: r, board: board.New(root.Rows(), root.Cols())}
			for idx := range jobs {
				rng := rand.New(rand.NewSource(deriveSeed(that.seed, idx)))
				move := moves[idx]
				move.Player = player

				for i := 0; i < that.rollouts && ctx.Err() == nil; i++ {
					p.board.CopyFrom(root)

					switch outcome := p.run(move, rng); {
					case outcome.IsWinFor(player):
						results[idx].wins++
					case outcome.Outcome == entity.OutcomeDraw:
						results[idx].draws++
					}
					results[idx].played++
				}
			}
		}()
	}

feed:
	for idx := range moves {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return pickByRate(moves, results, root, evaluator.For(r.Geometry()), player)
}

func pickByRate(moves []entity.Move, results []tally, b *board.Board, ev *evaluator.Evaluator, player entity.Cell) (entity.Move, bool) {
	bestIdx := -1
	var bestRate float64
	var bestScore int

	for idx, move := range moves {
		if results[idx].played == 0 {
			continue
		}

		move.Player = player
		rate := results[idx].rate()
		score := ev.ScoreAfter(b, move, player)

		if bestIdx < 0 || better(rate, results[idx].played, score, bestRate, results[bestIdx].played, bestScore) {
			bestIdx, bestRate, bestScore = idx, rate, score
		}
	}

	if bestIdx < 0 {
		return entity.Move{}, false
	}

	best := moves[bestIdx]
	best.Player = player

	return best, true
}

func better(rate float64, played, score int, bestRate float64, bestPlayed, bestScore int) bool {
	if rate != bestRate {
		return rate > bestRate
	}
	if played != bestPlayed {
		return played > bestPlayed
	}
	return score > bestScore
}

// playout is one worker's scratch state, reused across rollouts.
type playout struct {
	rules  rules.Rules
	board  *board.Board
	buffer []entity.Move
}

// run plays first, then uniformly random moves until the game ends.
func (that *playout) run(first entity.Move, rng *rand.Rand) entity.TerminalStatus {
	last := first
	that.board.Set(last.Row, last.Col, last.Player)

	for {
		status := that.rules.DetectTerminal(that.board, last)
		if status.IsTerminal() {
			return status
		}

		next := that.randomMove(rng)
		next.Player = last.Player.Opponent()
		that.board.Set(next.Row, next.Col, next.Player)
		last = next
	}
}

// randomMove samples a few cells directly on open boards before enumerating.
func (that *playout) randomMove(rng *rand.Rand) entity.Move {
	b := that.board
	if !that.rules.Geometry().Gravity {
		for try := 0; try < 8; try++ {
			idx := rng.Intn(b.Rows() * b.Cols())
			if b.AtIndex(idx) == entity.Empty {
				return entity.Move{Row: idx / b.Cols(), Col: idx % b.Cols()}
			}
		}
	}

	that.buffer = that.rules.AppendLegalMoves(that.buffer, b)

	return that.buffer[rng.Intn(len(that.buffer))]
}
