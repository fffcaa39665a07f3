package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewRouter(logger, service.NewMoveService(logger, nil))
}

func get(t *testing.T, handler http.Handler, board string, extra url.Values) *httptest.ResponseRecorder {
	t.Helper()

	query := url.Values{"board": {board}}
	for key, values := range extra {
		query[key] = values
	}

	req := httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func TestMoveHandler_ValidBoards(t *testing.T) {
	router := newTestRouter(t)

	boards := []string{
		"         ",
		"x        ",
		"ox       ",
		"xox      ",
	}

	for _, board := range boards {
		t.Run(board, func(t *testing.T) {
			// When: requesting a move for a legal board
			rr := get(t, router, board, nil)

			// Then: the request succeeds with a plain text board
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/plain;charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Len(t, rr.Body.String(), entity.BoardSize)
		})
	}
}

func TestMoveHandler_InvalidBoards(t *testing.T) {
	router := newTestRouter(t)

	boards := []string{
		"        ",
		"          ",
		"xo      z",
		"xoxoxoxox",
		"xx       ",
		"oxxx     ",
		"oo       ",
		"xooo     ",
		"o        ",
		"oxo      ",
		"xxxo o   ",
		"xo xo x  ",
		"  xoxox  ",
		"xo  xo  x",
	}

	for _, board := range boards {
		t.Run(board, func(t *testing.T) {
			// When: requesting a move for an illegal board
			rr := get(t, router, board, nil)

			// Then: the request is rejected as a bad request
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "Invalid board.")
		})
	}
}

func TestMoveHandler_Strategy(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		board    string
		expected string
	}{
		{board: "xox ox   ", expected: "xox ox o "}, // win
		{board: "x xo     ", expected: "xoxo     "}, // block
		{board: "o  x   xo", expected: "oo x   xo"}, // fork
		{board: "x   o   x", expected: "xo  o   x"}, // block fork
		{board: "x        ", expected: "x   o    "}, // center
		{board: "o   x   x", expected: "o o x   x"}, // opposite
		{board: "         ", expected: "    o    "}, // empty
		{board: "o   x    ", expected: "oo  x    "}, // side
	}

	for _, tt := range tests {
		t.Run(tt.board, func(t *testing.T) {
			rr := get(t, router, tt.board, nil)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.expected, rr.Body.String())
		})
	}
}

func TestMoveHandler_Player(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Plays x when asked", func(t *testing.T) {
		rr := get(t, router, "         ", url.Values{"player": {"x"}})

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "    x    ", rr.Body.String())
	})

	t.Run("Rejects an unknown player", func(t *testing.T) {
		rr := get(t, router, "         ", url.Values{"player": {"z"}})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid player.")
	})
}

type failingMoves struct{}

func (failingMoves) NextMove(context.Context, string, string) (*entity.Move, error) {
	return nil, errors.New("boom")
}

func TestMoveHandler_InternalError(t *testing.T) {
	// Given: a service that fails for reasons other than input
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router := NewRouter(logger, failingMoves{})

	// When: requesting a move
	rr := get(t, router, "         ", nil)

	// Then: the failure is reported as a server error
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Issues a new id", func(t *testing.T) {
		rr := get(t, router, "         ", nil)

		assert.NotEmpty(t, rr.Header().Get(requestIDHeader))
	})

	t.Run("Keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))
	})
}

func TestStart_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Start(ctx, "0", newTestRouter(t))
	}()

	cancel()

	require.NoError(t, <-errCh)
}
