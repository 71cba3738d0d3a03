package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"kingknight/engine"
	"kingknight/game"
	"kingknight/types"
)

// maxVisibleMoves is how many of the latest moves the panel lists.
const maxVisibleMoves = 12

// GameInfoPanel displays the selection, check status and move history alongside the board.
type GameInfoPanel struct {
	box     *tview.TextView
	session *game.Session
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetSession updates the panel with the current session state.
func (p *GameInfoPanel) SetSession(s *game.Session) {
	p.session = s
	p.refresh()
}

// pieceLetter is the short form used in the move list.
func pieceLetter(piece types.CellState) string {
	if piece == types.Knight {
		return "N"
	}
	return "K"
}

func yesNo(v bool) string {
	if v {
		return "[yellow]yes[-]"
	}
	return "[dimgray]no[-]"
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.session == nil {
		p.box.SetText("")
		return
	}
	b := p.session.Board()
	size := b.Size()

	var text strings.Builder
	text.WriteString("[white::b]Puzzle[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	goal := b.PositionOf(types.Goal)
	fmt.Fprintf(&text, "[white]Goal:[-:-:-] %s\n", types.Notation(goal.Row, goal.Col, size))

	selected := "none"
	if sel := p.session.Selection(); sel != types.Empty {
		selected = sel.String()
	}
	fmt.Fprintf(&text, "[white]Selected:[-:-:-] %s\n", selected)
	fmt.Fprintf(&text, "[white]King in check:[-:-:-] %s\n", yesNo(engine.IsInCheck(b, types.King)))
	fmt.Fprintf(&text, "[white]Knight in check:[-:-:-] %s\n", yesNo(engine.IsInCheck(b, types.Knight)))
	if p.session.Finished() {
		text.WriteString("\n[green::b]Solved![-:-:-]\n")
	}

	moves := p.session.History().UndoMoves()
	if len(moves) > 0 {
		text.WriteString("\n[white::b]Moves[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		start := 0
		if len(moves) > maxVisibleMoves {
			start = len(moves) - maxVisibleMoves
		}
		for i := start; i < len(moves); i++ {
			m := moves[i]
			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}
			src, dst := m.Source(), m.Target()
			fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s %s-%s\n", marker, i+1, pieceLetter(m.Piece),
				types.Notation(src.Row, src.Col, size), types.Notation(dst.Row, dst.Col, size))
		}
		if start > 0 {
			fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}
	if redo := len(p.session.History().RedoMoves()); redo > 0 {
		fmt.Fprintf(&text, "[dimgray]  %d undone[-]\n", redo)
	}

	p.box.SetText(text.String())
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	infoPanel.SetSession(board.session)

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	// Main vertical flex: board area on top, status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 4, 0, false)

	return mainFlex
}
