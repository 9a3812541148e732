package apperror

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is the parent of every move rejection; the specific causes below wrap it.
var ErrIllegalMove = errors.New("illegal move")

var (
	ErrOutOfRange   = fmt.Errorf("%w: cell is out of range", ErrIllegalMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrColumnFull   = fmt.Errorf("%w: column is full", ErrIllegalMove)
	ErrGameFinished = fmt.Errorf("%w: game is already finished", ErrIllegalMove)
	ErrNotYourTurn  = fmt.Errorf("%w: it's not your turn", ErrIllegalMove)
)

var (
	ErrEmptyHistory     = errors.New("no move to undo")
	ErrNothingToRedo    = errors.New("no move to redo")
	ErrNoAvailableMoves = errors.New("no available moves")

	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownVariant    = errors.New("unknown game variant")
	ErrUnknownStrategy   = errors.New("unknown search strategy")
	ErrInvalidGeometry   = errors.New("invalid board geometry")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
