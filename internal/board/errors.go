package board

import "errors"

// Parse and validation failures. Callers match them with errors.Is.
var (
	ErrInvalidSquare   = errors.New("invalid square")
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidMove     = errors.New("invalid move")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid position")
)
