package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emmanouilmatsis/tic-tac-toe/internal/apperror"
	"github.com/emmanouilmatsis/tic-tac-toe/internal/entity"
)

const moveKeyPrefix = "move:"

// MoveRepository memoizes solved positions. Search is pure, so an entry never goes stale.
type MoveRepository interface {
	Save(ctx context.Context, move *entity.Move) error
	GetByBoard(ctx context.Context, player entity.Mark, board entity.Board) (*entity.Move, error)
	DeleteByBoard(ctx context.Context, player entity.Mark, board entity.Board) error
}

type dbMove struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveRepository - ttl of zero keeps entries until Redis evicts them.
func NewMoveRepository(client *redis.Client, ttl time.Duration) MoveRepository {
	return &dbMove{
		client: client,
		ttl:    ttl,
	}
}

func moveKey(player entity.Mark, board entity.Board) string {
	return moveKeyPrefix + player.String() + ":" + board.String()
}

func (that *dbMove) Save(ctx context.Context, move *entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.Set(ctx, moveKey(move.Player, move.Board), moveJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}

func (that *dbMove) GetByBoard(ctx context.Context, player entity.Mark, board entity.Board) (*entity.Move, error) {
	response, err := that.client.Get(ctx, moveKey(player, board)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMoveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get move by board: %w", err)
	}

	var existingMove entity.Move
	if err = json.Unmarshal([]byte(response), &existingMove); err != nil {
		return nil, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	return &existingMove, nil
}

func (that *dbMove) DeleteByBoard(ctx context.Context, player entity.Mark, board entity.Board) error {
	deleted, err := that.client.Del(ctx, moveKey(player, board)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete move by board: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrMoveNotFound
	}

	return nil
}
