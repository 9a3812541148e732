// Package search holds the pluggable move-search strategies used by the AI orchestrator.
package search

import (
	"context"
	"fmt"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
)

const (
	NameMinimax    = "minimax"
	NameMonteCarlo = "montecarlo"
	NameHeuristic  = "heuristic"
	NameRandom     = "random"
)

// Strategy recommends a move for the player to move in session. It never mutates session.
// ok is false when the budget ran out before any move could be recommended.
type Strategy interface {
	Name() string
	BestMove(ctx context.Context, session *game.Session) (move entity.Move, ok bool)
}

// New builds the strategy named by name. seed drives every random choice the strategy makes.
func New(name string, config entity.AIConfig, seed int64) (Strategy, error) {
	switch name {
	case NameMinimax:
		return NewMinimax(config.SearchDepth, config.MaxNodes, config.CandidateRadius), nil
	case NameMonteCarlo:
		return NewMonteCarlo(config.Rollouts, config.CandidateRadius, config.Workers, seed), nil
	case NameHeuristic:
		return NewHeuristic(config.CandidateRadius), nil
	case NameRandom:
		return NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, name)
	}
}
