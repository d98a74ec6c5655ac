package model

import "errors"

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrLabelNotFound = errors.New("square label not found")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrGameOver      = errors.New("game is over")
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrMissingKing   = errors.New("each side needs exactly one king")
	ErrNotAuthorized = errors.New("not authorized to join this game")
	ErrGameFull      = errors.New("game is full")
)
