package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kingknight/board"
	"kingknight/config"
	"kingknight/engine"
	"kingknight/types"
)

// ColorConfigUI is the theme screen: a list of theme entries with a live
// board preview. Every applied change is written to the config file.
type ColorConfigUI struct {
	flex    *tview.Flex
	list    *tview.List
	preview *tview.Box
	cfg     *config.Config
	theme   config.Theme // pending theme shown in the preview
	board   *board.Board // position shown in the preview
	save    func() error
	onDone  func()
	editing int // entry whose color is being picked, -1 for the entry list
	status  string
}

// themeEntry is one editable theme setting. Exactly one of color and symbol
// is set, except for the highlight toggle which has neither.
type themeEntry struct {
	name    string
	color   func(t *config.Theme) *int
	symbol  func(t *config.Theme) *rune
	choices []rune
}

var themeEntries = []themeEntry{
	{name: "Light squares", color: func(t *config.Theme) *int { return &t.Colors.LightSquare }},
	{name: "Dark squares", color: func(t *config.Theme) *int { return &t.Colors.DarkSquare }},
	{name: "King", color: func(t *config.Theme) *int { return &t.Colors.King }},
	{name: "Knight", color: func(t *config.Theme) *int { return &t.Colors.Knight }},
	{name: "Goal", color: func(t *config.Theme) *int { return &t.Colors.Goal }},
	{name: "Cursor", color: func(t *config.Theme) *int { return &t.Colors.CursorBG }},
	{name: "Selection", color: func(t *config.Theme) *int { return &t.Colors.SelectedBG }},
	{name: "Targets", color: func(t *config.Theme) *int { return &t.Colors.TargetBG }},
	{name: "Coordinates", color: func(t *config.Theme) *int { return &t.Colors.Coordinates }},
	{name: "King symbol", symbol: func(t *config.Theme) *rune { return &t.Symbols.King }, choices: []rune{'♚', '♔', 'K'}},
	{name: "Knight symbol", symbol: func(t *config.Theme) *rune { return &t.Symbols.Knight }, choices: []rune{'♞', '♘', 'N'}},
	{name: "Goal symbol", symbol: func(t *config.Theme) *rune { return &t.Symbols.Goal }, choices: []rune{'◎', '★', 'X', 'G'}},
	{name: "Target symbol", symbol: func(t *config.Theme) *rune { return &t.Symbols.Target }, choices: []rune{'·', '•', '*', ' '}},
	{name: "Highlight targets"},
}

// Palette entries to choose from
var paletteColors = []struct {
	code int
	name string
}{
	{230, "Light Cream"},
	{187, "Pale Olive"},
	{180, "Tan"},
	{150, "Light Green"},
	{108, "Sage"},
	{136, "Dark Brown"},
	{94, "Saddle Brown"},
	{252, "Light Gray"},
	{245, "Gray"},
	{240, "Dark Gray"},
	{232, "Black"},
	{255, "White"},
	{160, "Red"},
	{208, "Dark Orange"},
	{3, "Olive"},
	{4, "Navy"},
	{24, "Dark Cyan"},
	{54, "Purple"},
}

// NewColorConfig creates the theme screen for cfg. save persists the config,
// onDone is called when the screen should close. b is copied for the preview.
func NewColorConfig(cfg *config.Config, b *board.Board, save func() error, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:     cfg,
		theme:   cfg.Theme,
		board:   b.Clone(),
		save:    save,
		onDone:  onDone,
		editing: -1,
	}

	cc.list = tview.NewList()
	cc.list.SetBorder(true)
	cc.list.ShowSecondaryText(false)
	cc.populateList()

	cc.list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.previewColor(index)
	})
	cc.list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editing >= 0 {
			cc.applyColor(index)
		} else {
			cc.selectEntry(index)
		}
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.list, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// populateList fills the list with the theme entries or, while an entry is
// being edited, with the palette.
func (cc *ColorConfigUI) populateList() {
	cc.list.Clear()

	if cc.editing < 0 {
		cc.list.SetTitle(" Theme (Esc: back) ")
		for _, e := range themeEntries {
			cc.list.AddItem(cc.entryText(e), "", 0, nil)
		}
		return
	}

	e := themeEntries[cc.editing]
	current := *e.color(&cc.cfg.Theme)
	cc.list.SetTitle(fmt.Sprintf(" %s (Esc: cancel) ", e.name))
	for i, c := range paletteColors {
		cc.list.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	// adding items may have moved the preview, reset it to the saved color
	cc.theme = cc.cfg.Theme
	for i, c := range paletteColors {
		if c.code == current {
			cc.list.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) entryText(e themeEntry) string {
	t := &cc.cfg.Theme
	switch {
	case e.color != nil:
		code := *e.color(t)
		return fmt.Sprintf("[#%06x]██[-] %s (%d)", tcell.PaletteColor(code).Hex(), e.name, code)
	case e.symbol != nil:
		return fmt.Sprintf(" %c  %s", *e.symbol(t), e.name)
	}
	return fmt.Sprintf("[%s] %s", onOff(t.HighlightTargets), e.name)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// selectEntry acts on entry i of the entry list. Colors open the palette,
// symbols cycle through their choices and the highlight setting toggles.
func (cc *ColorConfigUI) selectEntry(i int) {
	if i < 0 || i >= len(themeEntries) {
		return
	}
	e := themeEntries[i]
	switch {
	case e.color != nil:
		cc.editing = i
		cc.populateList()
		return
	case e.symbol != nil:
		sym := e.symbol(&cc.theme)
		*sym = nextChoice(e.choices, *sym)
	default:
		cc.theme.HighlightTargets = !cc.theme.HighlightTargets
	}
	cc.apply()
	cc.populateList()
	cc.list.SetCurrentItem(i)
}

func nextChoice(choices []rune, cur rune) rune {
	for i, r := range choices {
		if r == cur {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// previewColor shows palette color i for the entry being edited.
func (cc *ColorConfigUI) previewColor(i int) {
	if cc.editing < 0 || i < 0 || i >= len(paletteColors) {
		return
	}
	*themeEntries[cc.editing].color(&cc.theme) = paletteColors[i].code
}

// applyColor stores palette color i and returns to the entry list.
func (cc *ColorConfigUI) applyColor(i int) {
	if cc.editing < 0 || i < 0 || i >= len(paletteColors) {
		return
	}
	entry := cc.editing
	*themeEntries[entry].color(&cc.theme) = paletteColors[i].code
	cc.apply()
	cc.editing = -1
	cc.populateList()
	cc.list.SetCurrentItem(entry)
}

func (cc *ColorConfigUI) apply() {
	cc.cfg.Theme = cc.theme
	if err := cc.save(); err != nil {
		cc.status = fmt.Sprintf("Theme not saved: %s", err)
		return
	}
	cc.status = "Theme saved"
}

// Back leaves the palette, or closes the screen from the entry list.
func (cc *ColorConfigUI) Back() {
	if cc.editing >= 0 {
		entry := cc.editing
		cc.editing = -1
		cc.theme = cc.cfg.Theme
		cc.populateList()
		cc.list.SetCurrentItem(entry)
		return
	}
	cc.onDone()
}

// Status returns the result of the last applied change.
func (cc *ColorConfigUI) Status() string {
	return cc.status
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := cc.board.Size()
	const left = 3
	startX, startY := x+2, y+1
	if width < size*2+left+4 || height < size+5 {
		return x, y, width, height
	}

	styles := newBoardStyles(cc.theme.Colors)
	symbols := cc.theme.Symbols
	targets := make(map[types.Pos]bool)
	if cc.theme.HighlightTargets {
		for _, p := range engine.LegalMoves(cc.board, types.Knight) {
			targets[p] = true
		}
	}
	knight := cc.board.PositionOf(types.Knight)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			pos := types.Pos{Row: row, Col: col}
			bg := styles.light
			if (row+col)%2 == 1 {
				bg = styles.dark
			}
			if targets[pos] {
				bg = styles.target
			}
			if pos == knight {
				bg = styles.selected
			}

			r, fg := ' ', styles.coords
			switch cc.board.Get(row, col) {
			case types.King:
				r, fg = symbols.King, styles.king
			case types.Knight:
				r, fg = symbols.Knight, styles.knight
			case types.Goal:
				r, fg = symbols.Goal, styles.goal
			default:
				if targets[pos] {
					r = symbols.Target
				}
			}
			drawCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), r, col, row, startX+left, startY)
		}
	}
	drawCoordinates(screen, startX, startY, size, left, tcell.StyleDefault.Foreground(styles.coords))

	for i, ch := range cc.status {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+2, ch, nil, tcell.StyleDefault)
		}
	}
	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.list.SetInputCapture(capture)
}
