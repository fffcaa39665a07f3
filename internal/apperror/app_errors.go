package apperror

import "errors"

var (
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrMoveNotFound  = errors.New("move not found")
)
