package entity

import (
	"fmt"
	"strings"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
)

// Cell is the content of a board square. The two non-empty values double as player identities.
type Cell int8

const (
	Empty Cell = iota
	Player1
	Player2
)

func (that Cell) IsPlayer() bool {
	return that == Player1 || that == Player2
}

// Opponent returns the other player. Empty has no opponent and is returned unchanged.
func (that Cell) Opponent() Cell {
	switch that {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (that Cell) String() string {
	switch that {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "empty"
	}
}

// ParsePlayer accepts "1", "2", "player1" or "player2".
func ParsePlayer(value string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "player1", "p1":
		return Player1, nil
	case "2", "player2", "p2":
		return Player2, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayer, value)
	}
}
