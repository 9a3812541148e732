package game

import "github.com/kuelshammer/LogicCastle-sub010/internal/entity"

// Record is the serialisable form of a session: its configuration plus the applied moves.
type Record struct {
	ID     string            `json:"id"`
	Config entity.GameConfig `json:"config"`
	Moves  []entity.Move     `json:"moves"`
	Redo   []entity.Move     `json:"redo,omitempty"`
}

// View is the read-only state handed to the renderer.
type View struct {
	ID            string                `json:"id"`
	Variant       entity.Variant        `json:"variant"`
	Geometry      entity.Geometry       `json:"geometry"`
	Board         [][]entity.Cell       `json:"board"`
	CurrentPlayer entity.Cell           `json:"current_player"`
	Status        entity.TerminalStatus `json:"status"`
	LastMove      *entity.Move          `json:"last_move,omitempty"`
	WinningLine   []entity.Move         `json:"winning_line,omitempty"`
	History       []entity.Move         `json:"history"`
	LegalMoves    []entity.Move         `json:"legal_moves"`
	CanUndo       bool                  `json:"can_undo"`
	CanRedo       bool                  `json:"can_redo"`
}
