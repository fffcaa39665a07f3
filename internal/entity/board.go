package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Mark is a single board cell. Its value is the character used for the cell on the wire.
type Mark byte

const (
	Empty Mark = ' '
	X     Mark = 'x'
	O     Mark = 'o'
)

const BoardSize = 9

var (
	ErrBoardLength = errors.New("board must have 9 cells")
	ErrInvalidCell = errors.New("invalid cell symbol")
	ErrInvalidMark = errors.New("invalid player mark")

	// WinCombos lists rows, columns and diagonals in scan order.
	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is a row-major 3x3 grid, cell (r, c) lives at index r*3+c.
type Board [BoardSize]Mark

// ParseMark converts a player identifier into a Mark.
func ParseMark(raw string) (Mark, error) {
	switch raw {
	case string(X):
		return X, nil
	case string(O):
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, raw)
	}
}

// Opponent returns the mark that moves after m.
func (m Mark) Opponent() Mark {
	if m == X {
		return O
	}
	return X
}

func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

func (m Mark) String() string {
	return string(m)
}

// ParseBoard reads the 9-character text form of a board.
func ParseBoard(raw string) (Board, error) {
	var board Board

	if len(raw) != BoardSize {
		return board, fmt.Errorf("%w: got %d", ErrBoardLength, len(raw))
	}

	for i := range len(raw) {
		switch cell := Mark(raw[i]); cell {
		case Empty, X, O:
			board[i] = cell
		default:
			return Board{}, fmt.Errorf("%w: %q at %d", ErrInvalidCell, raw[i], i)
		}
	}

	return board, nil
}

// MustParseBoard is ParseBoard for literals known to be well formed.
func MustParseBoard(raw string) Board {
	board, err := ParseBoard(raw)
	if err != nil {
		panic(err)
	}
	return board
}

func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)
	for _, cell := range that {
		sb.WriteByte(byte(cell))
	}
	return sb.String()
}

// Winner returns the owner of the first fully owned line, or Empty.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}
	return count
}

func (that Board) IsFull() bool {
	return that.Count(Empty) == 0
}

func (that Board) IsEmpty() bool {
	return that.Count(Empty) == BoardSize
}

// IsTerminal reports whether the game on this board is over.
func (that Board) IsTerminal() bool {
	return that.IsFull() || that.Winner() != Empty
}

// Place returns a copy of the board with cell set to mark.
func (that Board) Place(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

// Moves returns one board per empty cell, in ascending cell order, with that cell taken by mark.
func (that Board) Moves(mark Mark) []Board {
	moves := make([]Board, 0, that.Count(Empty))
	for i, cell := range that {
		if cell == Empty {
			moves = append(moves, that.Place(i, mark))
		}
	}
	return moves
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}

	*that = board
	return nil
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte{byte(m)}, nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*m = mark
	return nil
}
