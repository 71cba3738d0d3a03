package game

import (
	"fmt"

	"kingknight/types"
)

// Result is what a square click did to the session.
type Result int

const (
	Ignored    Result = iota // nothing happened
	Selected                 // a piece in check was picked up
	Deselected               // the selected piece was put down again
	NotInCheck               // the clicked piece may not be picked up
	Rejected                 // the selected piece cannot reach the square
	Moved                    // the selected piece moved
	Won                      // the selected piece moved onto the goal
)

var resultNames = [...]string{"ignored", "selected", "deselected", "not-in-check", "rejected", "moved", "won"}

func (r Result) String() string {
	if r >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Outcome describes the effect of a click for the status line.
type Outcome struct {
	Result Result
	Piece  types.CellState // piece selected, moved or refused
	Square string          // clicked square in board notation
	Err    error           // set for NotInCheck and Rejected
}

// Message returns a one-line description, empty for ignored clicks.
func (o Outcome) Message() string {
	switch o.Result {
	case Selected:
		return fmt.Sprintf("Selected %s on %s", o.Piece, o.Square)
	case Deselected:
		return fmt.Sprintf("Deselected %s", o.Piece)
	case NotInCheck:
		return fmt.Sprintf("The %s is not in check", o.Piece)
	case Rejected:
		return fmt.Sprintf("The %s cannot move to %s", o.Piece, o.Square)
	case Moved:
		return fmt.Sprintf("The %s moved to %s", o.Piece, o.Square)
	case Won:
		return fmt.Sprintf("The %s reached the goal on %s!", o.Piece, o.Square)
	}
	return ""
}
