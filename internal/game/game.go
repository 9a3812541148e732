// Package game sequences turns over a board and tracks history and terminal status.
package game

import (
	"fmt"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/board"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/rules"
)

// Session is one live game. It is not safe for concurrent use; callers serialise moves.
type Session struct {
	id     string
	config entity.GameConfig
	rules  rules.Rules

	board   *board.Board
	current entity.Cell
	history []entity.Move
	redo    []entity.Move
	status  entity.TerminalStatus
}

func NewSession(id string, config entity.GameConfig) (*Session, error) {
	engine, err := rules.New(config.Geometry)
	if err != nil {
		return nil, fmt.Errorf("failed to create rules: %w", err)
	}

	if config.StartingPlayer == entity.Empty {
		config.StartingPlayer = entity.Player1
	}

	if !config.StartingPlayer.IsPlayer() {
		return nil, fmt.Errorf("%w: starting player %d", apperror.ErrUnknownPlayer, config.StartingPlayer)
	}

	session := &Session{
		id:     id,
		config: config,
		rules:  engine,
	}
	session.Reset()

	return session, nil
}

// Restore rebuilds a session by replaying a record through the rules engine.
func Restore(record Record) (*Session, error) {
	session, err := NewSession(record.ID, record.Config)
	if err != nil {
		return nil, err
	}

	for i, move := range record.Moves {
		if _, err = session.Apply(move); err != nil {
			return nil, fmt.Errorf("failed to replay move %d: %w", i, err)
		}
	}

	// redo entries are stored most recent last, the same order Undo pushes them
	session.redo = append(session.redo, record.Redo...)

	return session, nil
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Config() entity.GameConfig {
	return that.config
}

func (that *Session) Rules() rules.Rules {
	return that.rules
}

// Board exposes the live board for read-only queries. Use CloneForSearch before mutating.
func (that *Session) Board() *board.Board {
	return that.board
}

func (that *Session) CurrentPlayer() entity.Cell {
	return that.current
}

func (that *Session) Status() entity.TerminalStatus {
	return that.status
}

func (that *Session) IsFinished() bool {
	return that.status.IsTerminal()
}

func (that *Session) History() []entity.Move {
	return append([]entity.Move(nil), that.history...)
}

func (that *Session) LastMove() (entity.Move, bool) {
	if len(that.history) == 0 {
		return entity.Move{}, false
	}

	return that.history[len(that.history)-1], true
}

// LegalMoves is empty once the game is over.
func (that *Session) LegalMoves() []entity.Move {
	if that.status.IsTerminal() {
		return nil
	}

	return that.rules.LegalMoves(that.board)
}

// Apply - validates and plays a move for the current player. A move that names a player must name the current one.
func (that *Session) Apply(move entity.Move) (entity.TerminalStatus, error) {
	status, err := that.apply(move)
	if err != nil {
		return status, err
	}

	that.redo = that.redo[:0]

	return status, nil
}

func (that *Session) apply(move entity.Move) (entity.TerminalStatus, error) {
	if that.status.IsTerminal() {
		return that.status, apperror.ErrGameFinished
	}

	if move.Player != entity.Empty && move.Player != that.current {
		return that.status, apperror.ErrNotYourTurn
	}

	move.Player = that.current

	resolved, err := that.rules.Place(that.board, move)
	if err != nil {
		return that.status, err
	}

	that.history = append(that.history, resolved)
	that.status = that.rules.DetectTerminal(that.board, resolved)
	that.current = that.current.Opponent()

	return that.status, nil
}

// Undo - reverts the most recent move and hands the turn back to its player.
func (that *Session) Undo() (entity.Move, error) {
	if len(that.history) == 0 {
		return entity.Move{}, apperror.ErrEmptyHistory
	}

	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]

	that.rules.Remove(that.board, last)
	that.redo = append(that.redo, last)
	that.current = last.Player
	// moves are never accepted after a terminal one, so the previous position was in progress
	that.status = entity.InProgress()

	return last, nil
}

// Redo - replays the most recently undone move. Any new Apply clears the redo stack.
func (that *Session) Redo() (entity.Move, entity.TerminalStatus, error) {
	if len(that.redo) == 0 {
		return entity.Move{}, that.status, apperror.ErrNothingToRedo
	}

	next := that.redo[len(that.redo)-1]

	status, err := that.apply(next)
	if err != nil {
		return next, status, fmt.Errorf("failed to redo move: %w", err)
	}

	that.redo = that.redo[:len(that.redo)-1]

	return that.history[len(that.history)-1], status, nil
}

func (that *Session) CanUndo() bool {
	return len(that.history) > 0
}

func (that *Session) CanRedo() bool {
	return len(that.redo) > 0
}

// Reset - fresh board, empty history, starting player to move.
func (that *Session) Reset() {
	that.board = that.rules.NewBoard()
	that.current = that.config.StartingPlayer
	that.history = nil
	that.redo = nil
	that.status = entity.InProgress()
}

// CloneForSearch returns a deep copy whose mutation never reaches the live session.
func (that *Session) CloneForSearch() *Session {
	return &Session{
		id:      that.id,
		config:  that.config,
		rules:   that.rules,
		board:   that.board.Clone(),
		current: that.current,
		history: append([]entity.Move(nil), that.history...),
		redo:    append([]entity.Move(nil), that.redo...),
		status:  that.status,
	}
}

func (that *Session) WinningLine() []entity.Move {
	last, ok := that.LastMove()
	if !ok || that.status.Outcome != entity.OutcomeWin {
		return nil
	}

	return that.rules.WinningLine(that.board, last)
}

func (that *Session) Record() Record {
	return Record{
		ID:     that.id,
		Config: that.config,
		Moves:  that.History(),
		Redo:   append([]entity.Move(nil), that.redo...),
	}
}

func (that *Session) View() View {
	view := View{
		ID:            that.id,
		Variant:       that.config.Variant,
		Geometry:      that.config.Geometry,
		Board:         that.board.Snapshot(),
		CurrentPlayer: that.current,
		Status:        that.status,
		WinningLine:   that.WinningLine(),
		History:       that.History(),
		LegalMoves:    that.LegalMoves(),
		CanUndo:       that.CanUndo(),
		CanRedo:       that.CanRedo(),
	}

	if last, ok := that.LastMove(); ok {
		view.LastMove = &last
	}

	return view
}
