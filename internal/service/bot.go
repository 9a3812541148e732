package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/evaluator"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/search"
)

type Stage string

const (
	StageWin      Stage = "win"
	StageBlock    Stage = "block"
	StageSearch   Stage = "search"
	StageFallback Stage = "fallback"
)

// Decision is the move the bot plays and how it got there. DoubleThreat is set when the
// opponent had two or more immediate wins; Threats then lists all of them.
type Decision struct {
	Move         entity.Move   `json:"move"`
	Stage        Stage         `json:"stage"`
	DoubleThreat bool          `json:"double_threat"`
	Threats      []entity.Move `json:"threats,omitempty"`
}

type BotService interface {
	ChooseMove(ctx context.Context, session *game.Session, strategy search.Strategy) (Decision, error)
}

type botService struct {
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBotService - seed drives the tie-break among equally scored fallback moves.
func NewBotService(logger *slog.Logger, seed int64) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		rng:    rand.New(rand.NewSource(seed)), //nolint: gosec // game tie-breaks, not security
	}
}

// ChooseMove runs the pipeline win, block, search, fallback and stops at the first stage that
// yields a move. It never mutates session and only fails when no legal move exists.
func (that *botService) ChooseMove(ctx context.Context, session *game.Session, strategy search.Strategy) (Decision, error) {
	log := that.logger.With("method", "ChooseMove", "session", session.ID())

	if session.IsFinished() {
		return Decision{}, apperror.ErrGameFinished
	}

	legal := session.LegalMoves()
	if len(legal) == 0 {
		return Decision{}, apperror.ErrNoAvailableMoves
	}

	me := session.CurrentPlayer()
	rules := session.Rules()
	scratch := session.Board().Clone()

	if wins := rules.WinningMoves(scratch, me); len(wins) > 0 {
		log.Debug("immediate win", "row", wins[0].Row, "col", wins[0].Col)
		return Decision{Move: wins[0], Stage: StageWin}, nil
	}

	decision := Decision{}
	threats := rules.WinningMoves(scratch, me.Opponent())

	switch {
	case len(threats) == 1:
		decision.Move = blockOf(threats[0], me)
		decision.Stage = StageBlock
		log.Debug("blocking threat", "row", decision.Move.Row, "col", decision.Move.Col)

		return decision, nil
	case len(threats) > 1:
		decision.DoubleThreat = true
		decision.Threats = threats
		log.Debug("double threat", "threats", len(threats))

		if session.Config().AI.DoubleThreatPolicy != entity.DoubleThreatSearch {
			decision.Move = blockOf(threats[0], me)
			decision.Stage = StageBlock

			return decision, nil
		}
	}

	if move, ok := that.search(ctx, session, strategy); ok {
		decision.Move = move
		decision.Stage = StageSearch
		log.Debug("search move", "strategy", strategy.Name(), "row", move.Row, "col", move.Col)

		return decision, nil
	}

	decision.Move = that.fallback(session, legal)
	decision.Stage = StageFallback
	log.Debug("fallback move", "row", decision.Move.Row, "col", decision.Move.Col)

	return decision, nil
}

// search runs the strategy under the session's time budget and discards anything illegal.
func (that *botService) search(ctx context.Context, session *game.Session, strategy search.Strategy) (entity.Move, bool) {
	if strategy == nil {
		return entity.Move{}, false
	}

	searchCtx, cancel := context.WithTimeout(ctx, session.Config().AI.TimeBudget)
	defer cancel()

	move, ok := strategy.BestMove(searchCtx, session)
	if !ok {
		return entity.Move{}, false
	}

	// gravity games accept a bare column; Resolve fills in the landing row
	resolved, err := session.Rules().Resolve(session.Board(), move)
	if err != nil {
		that.logger.Warn("strategy returned an illegal move", "strategy", strategy.Name(),
			"row", move.Row, "col", move.Col, "error", err)

		return entity.Move{}, false
	}

	resolved.Player = session.CurrentPlayer()

	return resolved, true
}

// fallback picks the best statically scored legal move, breaking ties at random.
func (that *botService) fallback(session *game.Session, legal []entity.Move) entity.Move {
	me := session.CurrentPlayer()
	scratch := session.Board().Clone()
	ev := evaluator.For(session.Rules().Geometry())

	var best []entity.Move
	bestScore := 0

	for _, move := range legal {
		move.Player = me

		score := ev.ScoreAfter(scratch, move, me)
		switch {
		case len(best) == 0 || score > bestScore:
			best = append(best[:0], move)
			bestScore = score
		case score == bestScore:
			best = append(best, move)
		}
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return best[that.rng.Intn(len(best))]
}

func blockOf(threat entity.Move, me entity.Cell) entity.Move {
	threat.Player = me
	return threat
}
