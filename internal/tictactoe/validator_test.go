package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
)

func TestIsValid_ValidBoards(t *testing.T) {
	boards := map[string]string{
		"empty":           "         ",
		"x first (x-1=o)": "x        ",
		"o first (x=o)":   "ox       ",
		"x first again":   "xox      ",
		"mid game":        "xox ox   ",
		"one cell left":   "xoxxoo xo",
		"level counts":    "x o      ",
	}

	for name, board := range boards {
		t.Run(name, func(t *testing.T) {
			assert.True(t, IsValid(board), "board %q", board)
		})
	}
}

func TestIsValid_InvalidBoards(t *testing.T) {
	boards := map[string]string{
		"too short":         "        ",
		"too long":          "          ",
		"unknown char":      "xo      z",
		"upper case":        "X        ",
		"full":              "xoxoxoxox",
		"x two ahead":       "xx       ",
		"x two ahead later": "oxxx     ",
		"o two ahead":       "oo       ",
		"o two ahead later": "xooo     ",
		"o moved first":     "o        ",
		"o one ahead":       "oxo      ",
		"horizontal win":    "xxxo o   ",
		"vertical win":      "xo xo x  ",
		"diagonal win":      "  xoxox  ",
		"main diagonal win": "xo  xo  x",
		"o already won":     "ooo xx x ",
		"empty string":      "",
		"multibyte symbol":  "xo     é",
	}

	for name, board := range boards {
		t.Run(name, func(t *testing.T) {
			assert.False(t, IsValid(board), "board %q", board)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("Returns the parsed board", func(t *testing.T) {
		// When: validating a legal position
		board, err := Validate("x xo     ")

		// Then: the parsed board should be returned
		require.NoError(t, err)
		assert.Equal(t, "x xo     ", board.String())
	})

	t.Run("Wraps the violated rule", func(t *testing.T) {
		tests := []struct {
			board string
			cause error
		}{
			{board: "        ", cause: entity.ErrBoardLength},
			{board: "xo      z", cause: entity.ErrInvalidCell},
			{board: "xx       ", cause: ErrTurnOrder},
			{board: "xoxoxoxox", cause: ErrBoardFull},
			{board: "oo       ", cause: ErrTurnOrder},
			{board: "xxxo o   ", cause: ErrGameOver},
		}

		for _, tt := range tests {
			// When: validating an illegal board
			_, err := Validate(tt.board)

			// Then: the error should carry both the generic and the specific cause
			require.ErrorIs(t, err, apperror.ErrInvalidBoard, "board %q", tt.board)
			require.ErrorIs(t, err, tt.cause, "board %q", tt.board)
		}
	})

	t.Run("Repeated validation gives the same answer", func(t *testing.T) {
		for range 3 {
			assert.True(t, IsValid("xox ox   "))
			assert.False(t, IsValid("xxxo o   "))
		}
	})
}
