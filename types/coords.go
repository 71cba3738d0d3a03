package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Square notation:
// - Files: a, b, c ... from the left column
// - Ranks: 1..size from the bottom row
// - Example on an 8x8 board: (0, 0) -> a8, (7, 7) -> h1, (5, 2) -> c3

// Notation converts a board coordinate to square notation.
func Notation(row, col, size int) string {
	return fmt.Sprintf("%c%d", 'a'+rune(col), size-row)
}

// ParseNotation converts square notation back to a board coordinate.
func ParseNotation(square string, size int) (Pos, error) {
	square = strings.TrimSpace(strings.ToLower(square))
	if len(square) < 2 {
		return Pos{}, fmt.Errorf("invalid square: %q", square)
	}
	col := int(square[0] - 'a')
	if col < 0 || col >= size {
		return Pos{}, fmt.Errorf("invalid file in square: %q", square)
	}
	rank, err := strconv.Atoi(square[1:])
	if err != nil || rank < 1 || rank > size {
		return Pos{}, fmt.Errorf("invalid rank in square: %q", square)
	}
	return Pos{Row: size - rank, Col: col}, nil
}
