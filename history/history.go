// Package history tracks the undo and redo stacks of a puzzle game.
package history

import (
	"errors"
	"fmt"

	"kingknight/board"
	"kingknight/engine"
	"kingknight/types"
)

var ErrEmptyHistory = errors.New("no moves in history")

// History holds moves made (undo stack) and moves undone (redo stack).
// The last element of each slice is the top of the stack.
type History struct {
	undo []types.MoveRecord
	redo []types.MoveRecord
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Record pushes a new move and discards anything that could be redone.
func (h *History) Record(m types.MoveRecord) {
	h.undo = append(h.undo, m)
	h.redo = h.redo[:0]
}

// Undo moves the most recent piece back to its source square.
// The stacks are unchanged if the move cannot be applied.
func (h *History) Undo(b *board.Board) (types.MoveRecord, error) {
	if len(h.undo) == 0 {
		return types.MoveRecord{}, fmt.Errorf("undo: %w", ErrEmptyHistory)
	}
	m := h.undo[len(h.undo)-1]
	if err := engine.ApplyMove(b, m.Piece, m.SourceRow, m.SourceCol); err != nil {
		return types.MoveRecord{}, fmt.Errorf("undo: %w", err)
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, m)
	return m, nil
}

// Redo replays the most recently undone move.
// The stacks are unchanged if the move cannot be applied.
func (h *History) Redo(b *board.Board) (types.MoveRecord, error) {
	if len(h.redo) == 0 {
		return types.MoveRecord{}, fmt.Errorf("redo: %w", ErrEmptyHistory)
	}
	m := h.redo[len(h.redo)-1]
	if err := engine.ApplyMove(b, m.Piece, m.TargetRow, m.TargetCol); err != nil {
		return types.MoveRecord{}, fmt.Errorf("redo: %w", err)
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, m)
	return m, nil
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// CanUndo returns true if there is a move to undo.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if there is a move to redo.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoMoves returns a copy of the undo stack, oldest first.
func (h *History) UndoMoves() []types.MoveRecord {
	return append([]types.MoveRecord{}, h.undo...)
}

// RedoMoves returns a copy of the redo stack, oldest push first.
func (h *History) RedoMoves() []types.MoveRecord {
	return append([]types.MoveRecord{}, h.redo...)
}

// Replace swaps in both stacks verbatim, as read from a save file.
func (h *History) Replace(undo, redo []types.MoveRecord) {
	h.undo = append([]types.MoveRecord(nil), undo...)
	h.redo = append([]types.MoveRecord(nil), redo...)
}
