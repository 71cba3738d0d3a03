package engine

import "errors"

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidPiece = errors.New("invalid piece")
	ErrOccupied     = errors.New("target square occupied")
	ErrNotInCheck   = errors.New("piece not in check")
)
