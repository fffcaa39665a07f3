package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
)

const (
	maxMessageSize = 1024
	readTimeout    = 60 * time.Second
	writeTimeout   = 10 * time.Second
)

var ErrUnknownAction = errors.New("unknown action")

type moveService interface {
	NextMove(ctx context.Context, board, player string) (*entity.Move, error)
}

type handlerFunc func(ctx context.Context, message *Message) Payload

type Server struct {
	logger *slog.Logger
	moves  moveService

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, moves moveService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		moves:  moves,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxMessageSize,
			WriteBufferSize: maxMessageSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNextMove] = server.handleNextMove

	return server
}

// Routes - mounts the WebSocket endpoint on /ws.
func (that *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)
	return mux
}

// upgradeToWebSocket - upgrades the connection and serves messages until the client leaves.
func (that *Server) upgradeToWebSocket(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket", "session", uuid.NewString())

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(r.Context(), log, conn); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - reads requests one by one and answers each with a single message.
func (that *Server) handleMessages(ctx context.Context, log *slog.Logger, conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return fmt.Errorf("failed to set read deadline: %w", err)
		}

		_, data, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.processMessage(ctx, log, data)

		if err = conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}

		if err = conn.WriteJSON(response); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}
}

func (that *Server) processMessage(ctx context.Context, log *slog.Logger, data []byte) *Message {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		return newMessage(actionError, Payload{Error: "invalid message"})
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		return newMessage(message.Action, Payload{Error: ErrUnknownAction.Error()})
	}

	return newMessage(message.Action, handler(ctx, &message))
}

func newMessage(action string, payload Payload) *Message {
	// only strings inside, cannot fail
	data, _ := json.Marshal(payload)

	return &Message{
		Action:  action,
		Payload: data,
	}
}
