// Package engine implements the movement rules of the king and the knight.
// All functions operate on a board and keep its grid and tracked positions
// in agreement.
package engine

import (
	"fmt"

	"kingknight/board"
	"kingknight/types"
)

// knightOffsets are the eight L-shaped knight moves as (row, col) deltas.
var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// chebyshev returns max(|drow|, |dcol|) between two squares.
func chebyshev(a, b types.Pos) int {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	if dr > dc {
		return dr
	}
	return dc
}

func isKnightJump(from, to types.Pos) bool {
	for _, off := range knightOffsets {
		if from.Row+off[0] == to.Row && from.Col+off[1] == to.Col {
			return true
		}
	}
	return false
}

// IsLegalMove reports whether piece may move to (row, col) by its movement
// pattern. It does not consider what occupies the target.
func IsLegalMove(b *board.Board, piece types.CellState, row, col int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	from := b.PositionOf(piece)
	to := types.Pos{Row: row, Col: col}
	switch piece {
	case types.King:
		return chebyshev(from, to) == 1
	case types.Knight:
		return isKnightJump(from, to)
	}
	return false
}

// LegalMoves returns every square piece may move to, in row-major order.
func LegalMoves(b *board.Board, piece types.CellState) []types.Pos {
	var moves []types.Pos
	for row := 0; row < b.Size(); row++ {
		for col := 0; col < b.Size(); col++ {
			if IsLegalMove(b, piece, row, col) {
				moves = append(moves, types.Pos{Row: row, Col: col})
			}
		}
	}
	return moves
}

// IsInCheck reports whether piece is attacked by the other piece on b.
func IsInCheck(b *board.Board, piece types.CellState) bool {
	return InCheck(piece, b.PositionOf(types.King), b.PositionOf(types.Knight))
}

// InCheck is IsInCheck for explicit positions. The king is in check when the
// knight is one knight jump away; the knight is in check when the king is
// adjacent to it.
func InCheck(piece types.CellState, king, knight types.Pos) bool {
	switch piece {
	case types.King:
		return isKnightJump(king, knight)
	case types.Knight:
		return chebyshev(king, knight) <= 1
	}
	return false
}

// ApplyMove moves piece to (row, col) without checking its movement pattern.
// The vacated square reverts to the goal if the piece was standing on it.
func ApplyMove(b *board.Board, piece types.CellState, row, col int) error {
	if !piece.IsPiece() {
		return fmt.Errorf("move %s: %w", piece, ErrInvalidPiece)
	}
	if !b.InBounds(row, col) {
		return fmt.Errorf("move %s to (%d,%d): %w", piece, row, col, board.ErrOutOfBounds)
	}
	if b.PositionOf(piece.Other()) == (types.Pos{Row: row, Col: col}) {
		return fmt.Errorf("move %s to (%d,%d): %w", piece, row, col, ErrOccupied)
	}
	from := b.PositionOf(piece)
	vacated := types.Empty
	if from == b.PositionOf(types.Goal) {
		vacated = types.Goal
	}
	b.Set(from.Row, from.Col, vacated)
	b.Set(row, col, piece)
	b.SetPosition(piece, types.Pos{Row: row, Col: col})
	return nil
}

// IsWin reports whether (row, col) is the goal square.
func IsWin(b *board.Board, row, col int) bool {
	return b.PositionOf(types.Goal) == types.Pos{Row: row, Col: col}
}
