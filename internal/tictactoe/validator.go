package tictactoe

import (
	"errors"
	"fmt"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
)

var (
	ErrTurnOrder = errors.New("mark counts are not plausible for o to move")
	ErrBoardFull = errors.New("board is full")
	ErrGameOver  = errors.New("board already has a winner")
)

// IsValid reports whether raw is a legal, unfinished board on which o may move.
func IsValid(raw string) bool {
	_, err := Validate(raw)
	return err == nil
}

// Validate parses raw and checks that it is a legal, unfinished position.
// Every failure wraps apperror.ErrInvalidBoard.
func Validate(raw string) (entity.Board, error) {
	board, err := entity.ParseBoard(raw)
	if err != nil {
		return entity.Board{}, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if err = checkPosition(board); err != nil {
		return entity.Board{}, err
	}

	return board, nil
}

// checkPosition - checks the rules that apply to an already parsed board.
func checkPosition(board entity.Board) error {
	// x moves first, so either x is one mark ahead or the counts are level.
	cx, co := board.Count(entity.X), board.Count(entity.O)
	if cx-1 != co && cx != co {
		return fmt.Errorf("%w: %w (x=%d, o=%d)", apperror.ErrInvalidBoard, ErrTurnOrder, cx, co)
	}

	if board.IsFull() {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, ErrBoardFull)
	}

	if winner := board.Winner(); winner != entity.Empty {
		return fmt.Errorf("%w: %w (%s)", apperror.ErrInvalidBoard, ErrGameOver, winner)
	}

	return nil
}
