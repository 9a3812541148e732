package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/usecase"
)

type gameManager interface {
	NewSession(ctx context.Context, variant entity.Variant, opts usecase.Options) (game.View, error)
	ApplyHumanMove(ctx context.Context, id string, move entity.Move) (usecase.MoveResult, error)
	RequestAIMove(ctx context.Context, id string) (usecase.MoveResult, error)
	Snapshot(ctx context.Context, id string) (game.View, error)
	Reset(ctx context.Context, id string) (game.View, error)
	Undo(ctx context.Context, id string) (game.View, error)
	Redo(ctx context.Context, id string) (game.View, error)
	Delete(ctx context.Context, id string) error
}

type Handlers interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
	ApplyMove(w http.ResponseWriter, r *http.Request)
	RequestAIMove(w http.ResponseWriter, r *http.Request)
	Undo(w http.ResponseWriter, r *http.Request)
	Redo(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
	games  gameManager
}

func NewHandlers(logger *slog.Logger, games gameManager) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

type createSessionRequest struct {
	Variant        entity.Variant    `json:"variant"`
	Difficulty     entity.Difficulty `json:"difficulty"`
	StartingPlayer string            `json:"starting_player"`
	Strategy       string            `json:"strategy"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type moveResponse struct {
	Result  usecase.MoveResult `json:"result"`
	Session *game.View         `json:"session,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	opts := usecase.Options{Difficulty: req.Difficulty, Strategy: req.Strategy}
	if req.StartingPlayer != "" {
		player, err := entity.ParsePlayer(req.StartingPlayer)
		if err != nil {
			that.writeError(w, err)
			return
		}
		opts.StartingPlayer = player
	}

	view, err := that.games.NewSession(r.Context(), req.Variant, opts)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view)
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, r, that.games.Snapshot)
}

func (that *handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) ApplyMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	id := chi.URLParam(r, "id")
	result, err := that.games.ApplyHumanMove(r.Context(), id, entity.CellMove(req.Row, req.Col))
	that.writeMove(w, result, err)
}

func (that *handlers) RequestAIMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := that.games.RequestAIMove(r.Context(), id)
	that.writeMove(w, result, err)
}

func (that *handlers) Undo(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, r, that.games.Undo)
}

func (that *handlers) Redo(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, r, that.games.Redo)
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	that.writeView(w, r, that.games.Reset)
}

func (that *handlers) writeView(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (game.View, error)) {
	view, err := op(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

// writeMove answers 422 for a rejected move, with the result explaining why.
func (that *handlers) writeMove(w http.ResponseWriter, result usecase.MoveResult, err error) {
	if err != nil {
		that.writeError(w, err)
		return
	}

	if !result.Accepted {
		that.writeJSON(w, http.StatusUnprocessableEntity, moveResponse{Result: result})
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Result: result, Session: result.View})
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrUnknownVariant),
		errors.Is(err, apperror.ErrUnknownStrategy),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrUnknownPlayer),
		errors.Is(err, apperror.ErrInvalidGeometry):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrEmptyHistory), errors.Is(err, apperror.ErrNothingToRedo):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrIllegalMove):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
