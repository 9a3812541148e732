package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/usecase"
)

func decodeRequest(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	err := json.Unmarshal(msg.Payload, &payload)

	return payload, err
}

func (that *Server) handleNewSession(ctx context.Context, msg *Message) Message {
	req, err := decodeRequest(msg)
	if err != nil {
		return errorReply(msg.Action, "malformed payload")
	}

	opts := usecase.Options{Difficulty: req.Difficulty, Strategy: req.Strategy}
	if req.StartingPlayer != "" {
		if opts.StartingPlayer, err = entity.ParsePlayer(req.StartingPlayer); err != nil {
			return that.failure(msg.Action, err)
		}
	}

	view, err := that.games.NewSession(ctx, req.Variant, opts)
	if err != nil {
		return that.failure(msg.Action, err)
	}

	return reply(msg.Action, ResponsePayload{Session: &view})
}

func (that *Server) handleGetSession(ctx context.Context, msg *Message) Message {
	return that.viewHandler(that.games.Snapshot)(ctx, msg)
}

func (that *Server) handleMove(ctx context.Context, msg *Message) Message {
	req, err := decodeRequest(msg)
	if err != nil {
		return errorReply(msg.Action, "malformed payload")
	}

	result, err := that.games.ApplyHumanMove(ctx, req.SessionID, entity.CellMove(req.Row, req.Col))

	return that.moveReply(msg.Action, result, err)
}

func (that *Server) handleAIMove(ctx context.Context, msg *Message) Message {
	req, err := decodeRequest(msg)
	if err != nil {
		return errorReply(msg.Action, "malformed payload")
	}

	result, err := that.games.RequestAIMove(ctx, req.SessionID)

	return that.moveReply(msg.Action, result, err)
}

func (that *Server) viewHandler(op func(ctx context.Context, id string) (game.View, error)) handlerFunc {
	return func(ctx context.Context, msg *Message) Message {
		req, err := decodeRequest(msg)
		if err != nil {
			return errorReply(msg.Action, "malformed payload")
		}

		view, err := op(ctx, req.SessionID)
		if err != nil {
			return that.failure(msg.Action, err)
		}

		return reply(msg.Action, ResponsePayload{Session: &view})
	}
}

// moveReply attaches the updated session to accepted moves; rejected moves carry only the result.
func (that *Server) moveReply(action string, result usecase.MoveResult, err error) Message {
	if err != nil {
		return that.failure(action, err)
	}

	if !result.Accepted {
		return reply(action, ResponsePayload{Result: &result, Error: result.Error})
	}

	return reply(action, ResponsePayload{Session: result.View, Result: &result})
}

// failure hides internal errors from the client; domain errors are reported as they are.
func (that *Server) failure(action string, err error) Message {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound),
		errors.Is(err, apperror.ErrUnknownVariant),
		errors.Is(err, apperror.ErrUnknownStrategy),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrUnknownPlayer),
		errors.Is(err, apperror.ErrInvalidGeometry),
		errors.Is(err, apperror.ErrEmptyHistory),
		errors.Is(err, apperror.ErrNothingToRedo),
		errors.Is(err, apperror.ErrIllegalMove):
		return errorReply(action, err.Error())
	default:
		that.logger.Error("request failed", "action", action, "error", err)
		return errorReply(action, "internal server error")
	}
}
