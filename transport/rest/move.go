package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
)

// defaultPlayer is the mark the endpoint plays when the request names none.
const defaultPlayer = "o"

type moveService interface {
	NextMove(ctx context.Context, board, player string) (*entity.Move, error)
}

type MoveHandler interface {
	NextMove(w http.ResponseWriter, r *http.Request)
}

type moveHandler struct {
	logger *slog.Logger

	moves moveService
}

func NewMoveHandler(logger *slog.Logger, moves moveService) MoveHandler {
	return &moveHandler{
		logger: logger.With("component", "rest"),
		moves:  moves,
	}
}

// NextMove - GET /?board=<9 chars>&player=<x|o>, answers with the board after the move as plain text.
func (that *moveHandler) NextMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "NextMove", "request_id", RequestIDFrom(r.Context()))

	query := r.URL.Query()

	player := query.Get("player")
	if player == "" {
		player = defaultPlayer
	}

	move, err := that.moves.NextMove(r.Context(), query.Get("board"), player)
	switch {
	case errors.Is(err, apperror.ErrInvalidPlayer):
		http.Error(w, "Invalid player.", http.StatusBadRequest)
		return
	case errors.Is(err, apperror.ErrInvalidBoard):
		http.Error(w, "Invalid board.", http.StatusBadRequest)
		return
	case err != nil:
		log.Error("failed to compute move", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain;charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write([]byte(move.Next.String())); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
