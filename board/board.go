// Package board stores the puzzle grid and the tracked positions of the
// king, the knight and the goal. It performs no rule checks.
package board

import (
	"errors"
	"fmt"
	"strings"

	"kingknight/types"
)

const (
	// DefaultSize is the side length of a standard chess board.
	DefaultSize = 8
	// MinSize is the smallest board a knight can move on.
	MinSize = 3
	// MaxSize keeps every file addressable by a single letter.
	MaxSize = 26
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrOverlap     = errors.New("markers overlap")
)

// Board is a size x size grid indexed as cells[row][col].
type Board struct {
	size     int
	cells    [][]types.CellState
	king     types.Pos
	knight   types.Pos
	goal     types.Pos
	onChange func(row, col int, state types.CellState)
}

// New creates a board with the three markers placed and every other cell empty.
func New(size int, king, knight, goal types.Pos) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("board size %d outside %d..%d", size, MinSize, MaxSize)
	}
	b := &Board{size: size}
	b.cells = make([][]types.CellState, size)
	for i := range b.cells {
		b.cells[i] = make([]types.CellState, size)
	}
	if err := b.Reset(king, knight, goal); err != nil {
		return nil, err
	}
	return b, nil
}

// Default returns the 8x8 starting layout: king b3, knight c3, goal g1.
func Default() *Board {
	b, err := New(DefaultSize, types.Pos{Row: 5, Col: 1}, types.Pos{Row: 5, Col: 2}, types.Pos{Row: 7, Col: 6})
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) addresses a cell of the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *Board) mustInBounds(row, col int) {
	if !b.InBounds(row, col) {
		panic(fmt.Errorf("(%d,%d) on %dx%d board: %w", row, col, b.size, b.size, ErrOutOfBounds))
	}
}

// Get returns the state of a cell. Panics on out-of-bounds coordinates.
func (b *Board) Get(row, col int) types.CellState {
	b.mustInBounds(row, col)
	return b.cells[row][col]
}

// Set stores a cell state. It does not update tracked positions.
// Panics on out-of-bounds coordinates.
func (b *Board) Set(row, col int, state types.CellState) {
	b.mustInBounds(row, col)
	if b.cells[row][col] == state {
		return
	}
	b.cells[row][col] = state
	if b.onChange != nil {
		b.onChange(row, col, state)
	}
}

// PositionOf returns the tracked position of the king, knight or goal.
// Returns (-1, -1) for Empty.
func (b *Board) PositionOf(piece types.CellState) types.Pos {
	switch piece {
	case types.King:
		return b.king
	case types.Knight:
		return b.knight
	case types.Goal:
		return b.goal
	}
	return types.Pos{Row: -1, Col: -1}
}

// SetPosition updates a tracked position without touching the grid.
func (b *Board) SetPosition(piece types.CellState, pos types.Pos) {
	b.mustInBounds(pos.Row, pos.Col)
	switch piece {
	case types.King:
		b.king = pos
	case types.Knight:
		b.knight = pos
	case types.Goal:
		b.goal = pos
	}
}

// OnChange registers a callback fired whenever Set changes a cell.
func (b *Board) OnChange(fn func(row, col int, state types.CellState)) {
	b.onChange = fn
}

// Reset clears the grid and places the markers. The board is untouched on error.
// The goal may not share a cell with a piece.
func (b *Board) Reset(king, knight, goal types.Pos) error {
	for _, p := range []types.Pos{king, knight, goal} {
		if !b.InBounds(p.Row, p.Col) {
			return fmt.Errorf("(%d,%d) on %dx%d board: %w", p.Row, p.Col, b.size, b.size, ErrOutOfBounds)
		}
	}
	if king == knight || goal == king || goal == knight {
		return ErrOverlap
	}
	b.place(king, knight, goal)
	return nil
}

// Restore is Reset for saved positions, where a piece may stand on the goal
// after a winning move. Only king and knight must differ.
func (b *Board) Restore(king, knight, goal types.Pos) error {
	for _, p := range []types.Pos{king, knight, goal} {
		if !b.InBounds(p.Row, p.Col) {
			return fmt.Errorf("(%d,%d) on %dx%d board: %w", p.Row, p.Col, b.size, b.size, ErrOutOfBounds)
		}
	}
	if king == knight {
		return ErrOverlap
	}
	b.place(king, knight, goal)
	return nil
}

func (b *Board) place(king, knight, goal types.Pos) {
	b.king, b.knight, b.goal = king, knight, goal
	for row := range b.cells {
		for col := range b.cells[row] {
			state := types.Empty
			switch (types.Pos{Row: row, Col: col}) {
			case king:
				state = types.King
			case knight:
				state = types.Knight
			case goal:
				state = types.Goal
			}
			b.Set(row, col, state)
		}
	}
}

// Cells returns a copy of the grid.
func (b *Board) Cells() [][]types.CellState {
	out := make([][]types.CellState, b.size)
	for i := range b.cells {
		out[i] = append([]types.CellState(nil), b.cells[i]...)
	}
	return out
}

// Clone returns an independent copy without the change callback.
func (b *Board) Clone() *Board {
	return &Board{
		size:   b.size,
		cells:  b.Cells(),
		king:   b.king,
		knight: b.knight,
		goal:   b.goal,
	}
}

// String prints one row per line as cell ordinals.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		for _, c := range row {
			fmt.Fprintf(&sb, "%d ", c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
