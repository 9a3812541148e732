package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
	"github.com/kuelshammer/LogicCastle-sub010/internal/game"
	"github.com/kuelshammer/LogicCastle-sub010/internal/usecase"
)

const (
	idlePingInterval = 30 * time.Second
	writeTimeout     = 10 * time.Second
	sendBuffer       = 16
)

type gameManager interface {
	NewSession(ctx context.Context, variant entity.Variant, opts usecase.Options) (game.View, error)
	ApplyHumanMove(ctx context.Context, id string, move entity.Move) (usecase.MoveResult, error)
	RequestAIMove(ctx context.Context, id string) (usecase.MoveResult, error)
	Snapshot(ctx context.Context, id string) (game.View, error)
	Reset(ctx context.Context, id string) (game.View, error)
	Undo(ctx context.Context, id string) (game.View, error)
	Redo(ctx context.Context, id string) (game.View, error)
}

type handlerFunc func(ctx context.Context, msg *Message) Message

// Server speaks the session API over one socket per client. Each request message gets exactly one reply
// carrying the same action.
type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		games:    games,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNew] = server.handleNewSession
	server.handlers[ActionGet] = server.handleGetSession
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionAI] = server.handleAIMove
	server.handlers[ActionUndo] = server.viewHandler(games.Undo)
	server.handlers[ActionRedo] = server.viewHandler(games.Redo)
	server.handlers[ActionReset] = server.viewHandler(games.Reset)

	return server
}

// ServeHTTP upgrades the request and serves messages until the client disconnects.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Debug("WebSocket connection established")

	send := make(chan Message, sendBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := writeWithHeartbeat(conn, send); err != nil {
			log.Debug("writer stopped", "error", err)
			// unblock the reader
			_ = conn.Close()
		}
	}()

	that.handleMessages(r.Context(), conn, send, done)

	close(send)
	<-done
}

// handleMessages - reads requests until the connection fails and queues one reply per request.
// It gives up as soon as the writer has stopped.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, send chan<- Message, writerDone <-chan struct{}) {
	log := that.logger.With("method", "HandleMessages")

	queue := func(msg Message) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("error reading message", "error", err)
			}
			return
		}

		var msg, out Message
		if err = json.Unmarshal(raw, &msg); err != nil {
			out = errorReply("", "malformed message")
		} else if handler, ok := that.handlers[msg.Action]; ok {
			out = handler(ctx, &msg)
		} else {
			out = errorReply(msg.Action, "unknown action")
		}

		if !queue(out) {
			return
		}
	}
}

// writeWithHeartbeat owns all writes on conn; it pings when the socket has been idle.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan Message) error {
	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()

	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}

			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
