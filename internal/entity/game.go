package entity

import (
	"fmt"
	"time"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
)

type Variant string

const (
	VariantConnect4 Variant = "connect4"
	VariantGomoku   Variant = "gomoku"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	DoubleThreatBlockFirst = "block-first"
	DoubleThreatSearch     = "search"
)

type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeDraw       Outcome = "draw"
)

// TerminalStatus is InProgress, Win(Winner) or Draw.
type TerminalStatus struct {
	Outcome Outcome `json:"outcome"`
	Winner  Cell    `json:"winner,omitempty"`
}

func InProgress() TerminalStatus {
	return TerminalStatus{Outcome: OutcomeInProgress}
}

func WinFor(player Cell) TerminalStatus {
	return TerminalStatus{Outcome: OutcomeWin, Winner: player}
}

func Draw() TerminalStatus {
	return TerminalStatus{Outcome: OutcomeDraw}
}

func (that TerminalStatus) IsTerminal() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeDraw
}

func (that TerminalStatus) IsWinFor(player Cell) bool {
	return that.Outcome == OutcomeWin && that.Winner == player
}

// Move targets a cell. Gravity-drop games only read Col; the rules engine fills in the landing Row.
type Move struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Player Cell `json:"player,omitempty"`
}

func ColumnMove(col int) Move {
	return Move{Col: col}
}

func CellMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (that Move) SameCell(other Move) bool {
	return that.Row == other.Row && that.Col == other.Col
}

// Geometry is fixed for the lifetime of a board.
type Geometry struct {
	Rows      int  `json:"rows"`
	Cols      int  `json:"cols"`
	WinLength int  `json:"win_length"`
	Gravity   bool `json:"gravity"`
}

func (that Geometry) Validate() error {
	if that.Rows <= 0 || that.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", apperror.ErrInvalidGeometry, that.Rows, that.Cols)
	}

	if that.WinLength < 2 || (that.WinLength > that.Rows && that.WinLength > that.Cols) {
		return fmt.Errorf("%w: win length %d on %dx%d", apperror.ErrInvalidGeometry, that.WinLength, that.Rows, that.Cols)
	}

	return nil
}

func (that Geometry) Area() int {
	return that.Rows * that.Cols
}

// AIConfig drives the orchestrator and its search strategy.
type AIConfig struct {
	Strategy           string        `json:"strategy"`
	SearchDepth        int           `json:"search_depth"`
	TimeBudget         time.Duration `json:"time_budget"`
	MaxNodes           int64         `json:"max_nodes"`
	Rollouts           int           `json:"rollouts"`
	CandidateRadius    int           `json:"candidate_radius"`
	Workers            int           `json:"workers"`
	Seed               int64         `json:"seed"`
	DoubleThreatPolicy string        `json:"double_threat_policy"`
}

type GameConfig struct {
	Variant        Variant  `json:"variant"`
	Geometry       Geometry `json:"geometry"`
	StartingPlayer Cell     `json:"starting_player"`
	AI             AIConfig `json:"ai"`
}

// WithDifficulty scales the search budget. Hard keeps the configured values.
func (that GameConfig) WithDifficulty(difficulty Difficulty) (GameConfig, error) {
	scaled := that

	switch difficulty {
	case DifficultyHard, "":
		return scaled, nil
	case DifficultyMedium:
		scaled.AI.SearchDepth = atLeastOne(that.AI.SearchDepth * 2 / 3)
		scaled.AI.Rollouts = atLeastOne(that.AI.Rollouts / 2)
		scaled.AI.TimeBudget = that.AI.TimeBudget / 2
	case DifficultyEasy:
		scaled.AI.SearchDepth = atLeastOne(that.AI.SearchDepth / 3)
		scaled.AI.Rollouts = atLeastOne(that.AI.Rollouts / 4)
		scaled.AI.TimeBudget = that.AI.TimeBudget / 4
	default:
		return that, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}

	return scaled, nil
}

func atLeastOne(value int) int {
	if value < 1 {
		return 1
	}
	return value
}
