package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
)

const defaultPlayer = "o"

func (that *Server) handleNextMove(ctx context.Context, msg *Message) Payload {
	log := that.logger.With("method", "handleNextMove")

	var request Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &request); err != nil {
			return Payload{Error: "invalid payload"}
		}
	}

	if request.Player == "" {
		request.Player = defaultPlayer
	}

	move, err := that.moves.NextMove(ctx, request.Board, request.Player)
	switch {
	case errors.Is(err, apperror.ErrInvalidPlayer):
		return Payload{Board: request.Board, Player: request.Player, Error: "invalid player"}
	case errors.Is(err, apperror.ErrInvalidBoard):
		return Payload{Board: request.Board, Player: request.Player, Error: "invalid board"}
	case err != nil:
		log.Error("failed to compute move", "error", err)
		return Payload{Board: request.Board, Player: request.Player, Error: "internal error"}
	}

	return Payload{Board: move.Next.String(), Player: move.Player.String()}
}
