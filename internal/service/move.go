package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/tictactoe"
)

type MoveService interface {
	NextMove(ctx context.Context, board, player string) (*entity.Move, error)
}

type moveRepo interface {
	Save(ctx context.Context, move *entity.Move) error
	GetByBoard(ctx context.Context, player entity.Mark, board entity.Board) (*entity.Move, error)
	DeleteByBoard(ctx context.Context, player entity.Mark, board entity.Board) error
}

type moveService struct {
	logger *slog.Logger

	moveRepo moveRepo
}

// NewMoveService - moveRepo may be nil, every move is then searched from scratch.
func NewMoveService(logger *slog.Logger, moveRepo moveRepo) MoveService {
	return &moveService{
		logger:   logger.With("component", "move_service"),
		moveRepo: moveRepo,
	}
}

// NextMove validates the text board and returns player's best reply.
// Cache trouble is logged and never fails the call.
func (that *moveService) NextMove(ctx context.Context, rawBoard, rawPlayer string) (*entity.Move, error) {
	log := that.logger.With("method", "NextMove", "board", rawBoard, "player", rawPlayer)

	player, err := entity.ParseMark(rawPlayer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidPlayer, err)
	}

	board, err := tictactoe.Validate(rawBoard)
	if err != nil {
		log.Debug("board rejected", "error", err)
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	if move := that.lookup(ctx, log, player, board); move != nil {
		log.Debug("move served from cache", "next", move.Next.String())
		return move, nil
	}

	next, err := tictactoe.Play(board, player)
	if err != nil {
		return nil, fmt.Errorf("failed to play: %w", err)
	}

	move := &entity.Move{Player: player, Board: board, Next: next}
	if that.moveRepo != nil {
		if err = that.moveRepo.Save(ctx, move); err != nil {
			log.Warn("failed to cache move", "error", err)
		}
	}

	log.Info("move computed", "next", next.String())

	return move, nil
}

// lookup returns a cached move, or nil on a miss. Entries that are not a legal reply are dropped.
func (that *moveService) lookup(ctx context.Context, log *slog.Logger, player entity.Mark, board entity.Board) *entity.Move {
	if that.moveRepo == nil {
		return nil
	}

	move, err := that.moveRepo.GetByBoard(ctx, player, board)
	if errors.Is(err, apperror.ErrMoveNotFound) {
		return nil
	}

	if err != nil {
		log.Warn("failed to read cached move", "error", err)
		return nil
	}

	if move.Player != player || move.Board != board || !slices.Contains(board.Moves(player), move.Next) {
		log.Warn("dropping cached move that is not a legal reply", "next", move.Next.String())
		if err = that.moveRepo.DeleteByBoard(ctx, player, board); err != nil {
			log.Warn("failed to drop cached move", "error", err)
		}
		return nil
	}

	return move
}
