// Package types contains shared data structures for kingknight.
package types

import "fmt"

// CellState is the content of a single board square.
type CellState uint8

const (
	Empty CellState = iota
	King
	Knight
	Goal
)

var cellNames = [...]string{"empty", "king", "knight", "goal"}

func (c CellState) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return fmt.Sprintf("CellState(%d)", uint8(c))
}

// IsPiece returns true for the two movable pieces.
func (c CellState) IsPiece() bool {
	return c == King || c == Knight
}

// Other returns the opposing piece, or Empty if c is not a piece.
func (c CellState) Other() CellState {
	switch c {
	case King:
		return Knight
	case Knight:
		return King
	}
	return Empty
}

// MarshalText encodes the state by name so save files stay readable.
func (c CellState) MarshalText() ([]byte, error) {
	if int(c) >= len(cellNames) {
		return nil, fmt.Errorf("unknown cell state %d", uint8(c))
	}
	return []byte(cellNames[c]), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (c *CellState) UnmarshalText(text []byte) error {
	for i, name := range cellNames {
		if string(text) == name {
			*c = CellState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", string(text))
}

// Pos is a (row, col) board coordinate. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// MoveRecord holds what is needed to undo or redo one move.
type MoveRecord struct {
	TargetRow int       `json:"target_row"`
	TargetCol int       `json:"target_col"`
	Piece     CellState `json:"piece"`
	SourceRow int       `json:"source_row"`
	SourceCol int       `json:"source_col"`
}

// Target returns the square the piece moved to.
func (m MoveRecord) Target() Pos {
	return Pos{Row: m.TargetRow, Col: m.TargetCol}
}

// Source returns the square the piece moved from.
func (m MoveRecord) Source() Pos {
	return Pos{Row: m.SourceRow, Col: m.SourceCol}
}

// NewMoveRecord creates a record of piece moving from src to dst.
func NewMoveRecord(piece CellState, src, dst Pos) MoveRecord {
	return MoveRecord{
		TargetRow: dst.Row,
		TargetCol: dst.Col,
		Piece:     piece,
		SourceRow: src.Row,
		SourceCol: src.Col,
	}
}

// Snapshot is the persisted form of a game: the six marker coordinates
// (king row/col, knight row/col, goal row/col) and both move stacks.
type Snapshot struct {
	Positions [6]int       `json:"positions"`
	Undo      []MoveRecord `json:"undo"`
	Redo      []MoveRecord `json:"redo"`
}

// King returns the king position stored in the snapshot.
func (s *Snapshot) King() Pos {
	return Pos{Row: s.Positions[0], Col: s.Positions[1]}
}

// Knight returns the knight position stored in the snapshot.
func (s *Snapshot) Knight() Pos {
	return Pos{Row: s.Positions[2], Col: s.Positions[3]}
}

// Goal returns the goal position stored in the snapshot.
func (s *Snapshot) Goal() Pos {
	return Pos{Row: s.Positions[4], Col: s.Positions[5]}
}

// NewSnapshot builds a snapshot from marker positions and history stacks.
func NewSnapshot(king, knight, goal Pos, undo, redo []MoveRecord) Snapshot {
	return Snapshot{
		Positions: [6]int{king.Row, king.Col, knight.Row, knight.Col, goal.Row, goal.Col},
		Undo:      undo,
		Redo:      redo,
	}
}
