package tictactoe

import (
	"fmt"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
)

const centerCell = 4

// node is the outcome of searching one position.
type node struct {
	board entity.Board // the move chosen at this position, unset for terminal positions
	score int
	depth int // ply at which the line of play ended
}

// Play returns board after the best move for player, found by full-depth minimax.
func Play(board entity.Board, player entity.Mark) (entity.Board, error) {
	if !player.IsPlayer() {
		return entity.Board{}, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if err := checkPosition(board); err != nil {
		return entity.Board{}, err
	}

	return minimax(board, player, 0).board, nil
}

func minimax(board entity.Board, player entity.Mark, depth int) node {
	// fixed opening, no search on the empty board
	if board.IsEmpty() {
		return node{board: board.Place(centerCell, player), score: 0, depth: depth}
	}

	if board.IsTerminal() {
		return node{score: evaluate(board.Winner()), depth: depth}
	}

	var best node
	for i, move := range board.Moves(player) {
		reply := minimax(move, player.Opponent(), depth+1)
		candidate := node{board: move, score: reply.score, depth: reply.depth}

		if i == 0 || better(player, candidate, best) {
			best = candidate
		}
	}

	return best
}

// better reports whether candidate strictly beats best for player.
// X wants the lowest score and O the highest; on equal scores both take the line that ends deeper.
// Equal keys keep best, so the earliest generated move wins ties.
func better(player entity.Mark, candidate, best node) bool {
	if candidate.score != best.score {
		if player == entity.X {
			return candidate.score < best.score
		}
		return candidate.score > best.score
	}

	return candidate.depth > best.depth
}

// evaluate scores a finished game from o's point of view.
func evaluate(winner entity.Mark) int {
	switch winner {
	case entity.X:
		return -1
	case entity.O:
		return 1
	default:
		return 0
	}
}
