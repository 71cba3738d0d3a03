// Package ui specifies custom controls for tview to play the king and knight puzzle in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kingknight/config"
	"kingknight/game"
	"kingknight/history"
	"kingknight/save"
	"kingknight/types"
)

// boardStyles are the palette colors resolved from the theme.
type boardStyles struct {
	light, dark  tcell.Color
	king, knight tcell.Color
	goal         tcell.Color
	cursor       tcell.Color
	selected     tcell.Color
	target       tcell.Color
	coords       tcell.Color
}

type BoardUI struct {
	Box       *tview.Box
	session   *game.Session
	cells     [][]types.CellState // mirror of the board, kept current by change notifications
	hint      *tview.TextView
	cfg       *config.Config
	curRow    int
	curCol    int
	styles    boardStyles
	status    string
	infoPanel *GameInfoPanel
	onWin     func(game.Outcome)
}

// NewBoard creates the board control for a session.
func NewBoard(s *game.Session, c *config.Config, hint *tview.TextView) *BoardUI {
	b := &BoardUI{
		Box:  tview.NewBox(),
		hint: hint,
	}
	b.SetConfig(c)
	b.SetSession(s)
	b.Box.SetDrawFunc(b.draw)
	return b
}

// SetSession attaches the control to s and subscribes to its board.
func (g *BoardUI) SetSession(s *game.Session) {
	g.session = s
	g.cells = s.Board().Cells()
	g.curRow, g.curCol = s.Board().PositionOf(types.Knight).Row, s.Board().PositionOf(types.Knight).Col
	s.Board().OnChange(func(row, col int, state types.CellState) {
		g.cells[row][col] = state
	})
	g.refreshHint()
}

// Session returns the attached session.
func (g *BoardUI) Session() *game.Session {
	return g.session
}

// OnWin registers a callback for when a move reaches the goal.
func (g *BoardUI) OnWin(fn func(game.Outcome)) {
	g.onWin = fn
}

func newBoardStyles(colors config.ConfigColors) boardStyles {
	return boardStyles{
		light:    tcell.PaletteColor(colors.LightSquare),
		dark:     tcell.PaletteColor(colors.DarkSquare),
		king:     tcell.PaletteColor(colors.King),
		knight:   tcell.PaletteColor(colors.Knight),
		goal:     tcell.PaletteColor(colors.Goal),
		cursor:   tcell.PaletteColor(colors.CursorBG),
		selected: tcell.PaletteColor(colors.SelectedBG),
		target:   tcell.PaletteColor(colors.TargetBG),
		coords:   tcell.PaletteColor(colors.Coordinates),
	}
}

// SetConfig applies the theme of c. Call it again after the theme changes.
func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = newBoardStyles(c.Theme.Colors)
	g.cfg = c
}

// Cursor returns the square under the cursor.
func (g *BoardUI) Cursor() types.Pos {
	return types.Pos{Row: g.curRow, Col: g.curCol}
}

// MoveCursor shifts the cursor, stopping at the board edge.
func (g *BoardUI) MoveCursor(dRow, dCol int) {
	size := len(g.cells)
	if g.curRow+dRow < 0 || g.curRow+dRow >= size {
		return
	}
	if g.curCol+dCol < 0 || g.curCol+dCol >= size {
		return
	}
	g.curRow += dRow
	g.curCol += dCol
}

// JumpTo moves the cursor to a square given in notation, e.g. "e2".
func (g *BoardUI) JumpTo(square string) error {
	p, err := types.ParseNotation(square, len(g.cells))
	if err != nil {
		g.status = err.Error()
		g.refreshHint()
		return err
	}
	g.curRow, g.curCol = p.Row, p.Col
	return nil
}

// Click sends a click on the cursor square to the session.
func (g *BoardUI) Click() {
	out := g.session.OnSquareClicked(g.curRow, g.curCol)
	if msg := out.Message(); msg != "" {
		g.status = msg
	}
	if out.Result == game.Won && g.onWin != nil {
		g.onWin(out)
	}
	g.refreshHint()
}

// Deselect drops the current selection.
func (g *BoardUI) Deselect() {
	if g.session.Selection() != types.Empty {
		g.status = fmt.Sprintf("Deselected %s", g.session.Selection())
		g.session.ClearSelection()
	}
	g.refreshHint()
}

func (g *BoardUI) NewGame() {
	g.session.NewGame()
	knight := g.session.Board().PositionOf(types.Knight)
	g.curRow, g.curCol = knight.Row, knight.Col
	g.status = "New game"
	g.refreshHint()
}

func (g *BoardUI) Undo() {
	m, err := g.session.Undo()
	switch {
	case errors.Is(err, history.ErrEmptyHistory):
		g.status = "No more moves to undo"
	case err != nil:
		g.status = fmt.Sprintf("Undo failed: %s", err)
	default:
		g.status = fmt.Sprintf("Undid %s, back to %s", m.Piece, g.square(m.Source()))
	}
	g.refreshHint()
}

func (g *BoardUI) Redo() {
	m, err := g.session.Redo()
	switch {
	case errors.Is(err, history.ErrEmptyHistory):
		g.status = "No more moves to redo"
	case err != nil:
		g.status = fmt.Sprintf("Redo failed: %s", err)
	default:
		g.status = fmt.Sprintf("Redid %s to %s", m.Piece, g.square(m.Target()))
	}
	g.refreshHint()
}

func (g *BoardUI) Save(path string) {
	if err := g.session.Save(path); err != nil {
		g.status = fmt.Sprintf("Save failed: %s", err)
	} else {
		g.status = fmt.Sprintf("Saved to %s", path)
	}
	g.refreshHint()
}

func (g *BoardUI) Load(path string) {
	err := g.session.Load(path)
	switch {
	case errors.Is(err, save.ErrMalformedSave):
		g.status = "Save file is damaged, nothing loaded"
	case err != nil:
		g.status = fmt.Sprintf("Load failed: %s", err)
	default:
		g.status = fmt.Sprintf("Loaded %s", path)
	}
	g.refreshHint()
}

// Status returns the last status message.
func (g *BoardUI) Status() string {
	return g.status
}

func (g *BoardUI) square(p types.Pos) string {
	return types.Notation(p.Row, p.Col, len(g.cells))
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetSession(g.session)
	}
	if g.hint == nil {
		return
	}
	status := g.status
	if status == "" {
		status = "Pick up a piece that is in check"
	}
	g.hint.SetText(fmt.Sprintf("  %s\n  hjkl/↑↓←→ move  g go to  ⏎ select/move  u undo  r redo  n new  s save  o load  t theme  a about  q quit", status))
}

// draw renders the board with ranks on the left and files below, 2 characters per cell.
func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	size := len(g.cells)
	if size == 0 {
		return x, y, 1, 1
	}
	const left = 3

	targets := make(map[types.Pos]bool)
	if g.cfg.Theme.HighlightTargets {
		for _, p := range g.session.LegalTargets() {
			targets[p] = true
		}
	}
	selected := g.session.Selection()
	selPos := g.session.Board().PositionOf(selected)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			pos := types.Pos{Row: row, Col: col}
			bg := g.styles.light
			if (row+col)%2 == 1 {
				bg = g.styles.dark
			}
			if targets[pos] {
				bg = g.styles.target
			}
			if selected != types.Empty && pos == selPos {
				bg = g.styles.selected
			}
			if row == g.curRow && col == g.curCol {
				bg = g.styles.cursor
			}

			r, fg := ' ', g.styles.coords
			switch g.cells[row][col] {
			case types.King:
				r, fg = g.cfg.Theme.Symbols.King, g.styles.king
			case types.Knight:
				r, fg = g.cfg.Theme.Symbols.Knight, g.styles.knight
			case types.Goal:
				r, fg = g.cfg.Theme.Symbols.Goal, g.styles.goal
			default:
				if targets[pos] {
					r = g.cfg.Theme.Symbols.Target
				}
			}
			drawCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), r, col, row, x+left, y)
		}
	}
	drawCoordinates(screen, x, y, size, left, tcell.StyleDefault.Foreground(g.styles.coords))
	return x, y, size*2 + left, size + 1
}

// drawCell draws a board cell (2 characters wide)
func drawCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// drawCoordinates labels ranks (size..1 from the top) and files (a, b, ...).
func drawCoordinates(s tcell.Screen, x, y, size, left int, style tcell.Style) {
	for row := 0; row < size; row++ {
		label := fmt.Sprintf("%2d", size-row)
		for i, ch := range label {
			s.SetContent(x+i, y+row, ch, nil, style)
		}
	}
	for col := 0; col < size; col++ {
		s.SetContent(x+left+col*2, y+size, 'a'+rune(col), nil, style)
	}
}
