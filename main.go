// kingknight is a terminal puzzle: move the king or the knight while it is in
// check until one of them reaches the goal square.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kingknight/config"
	"kingknight/game"
	"kingknight/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagBoardSize = flag.Int("size", 0, "Board size (overrides config)")
	flagSaveFile  = flag.String("save", "", "Save file path (overrides config)")
	flagSeed      = flag.Int64("seed", 0, "Random seed for new games (0 = time based)")
	flagVersion   = flag.Bool("version", false, "Print version and exit")
)

const aboutText = `King & Knight

Only a piece that is in check may move.
The king is in check when the knight could jump onto it,
the knight when the king stands next to it.
Bring either piece onto the goal square.`

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var cfg *config.Config
var savePath string

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("kingknight %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagBoardSize > 0 {
		cfg.BoardSize = *flagBoardSize
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	savePath = *flagSaveFile
	if savePath == "" {
		if savePath, err = cfg.SavePath(); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot locate save file: %s\n", err)
			os.Exit(1)
		}
	}

	debugLog, closeLog := openDebugLog(cfg)
	defer closeLog()

	seed := *flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := game.NewSession(game.Config{
		BoardSize: cfg.BoardSize,
		Rand:      rand.New(rand.NewSource(seed)),
		Logger:    debugLog,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ kingknight ")

	gameHint := tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(session, cfg, gameHint)
	gameBoard.OnWin(func(out game.Outcome) {
		showModal("win", fmt.Sprintf("%s\n\nPlay again?", out.Message()), []string{"New game", "Quit"}, func(label string) {
			if label == "Quit" {
				app.Stop()
				return
			}
			gameBoard.NewGame()
		})
	})

	gameFrame := ui.CreateGameLayout(gameBoard, gameHint)
	gameBoard.Box.SetInputCapture(handleKey)

	rootPage.AddPage("gameview", gameFrame, true, true)

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
}

// handleKey maps keys on the board onto session actions.
func handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveCursor(-1, 0)
	case tcell.KeyDown:
		gameBoard.MoveCursor(1, 0)
	case tcell.KeyLeft:
		gameBoard.MoveCursor(0, -1)
	case tcell.KeyRight:
		gameBoard.MoveCursor(0, 1)
	case tcell.KeyEnter:
		gameBoard.Click()
	case tcell.KeyEsc:
		gameBoard.Deselect()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveCursor(0, -1)
		case 'j':
			gameBoard.MoveCursor(1, 0)
		case 'k':
			gameBoard.MoveCursor(-1, 0)
		case 'l':
			gameBoard.MoveCursor(0, 1)
		case ' ':
			gameBoard.Click()
		case 'n':
			gameBoard.NewGame()
		case 's':
			gameBoard.Save(savePath)
		case 'o':
			gameBoard.Load(savePath)
		case 'u':
			gameBoard.Undo()
		case 'r':
			gameBoard.Redo()
		case 'g':
			showSquarePrompt()
		case 't':
			showThemeConfig()
		case 'a':
			showModal("about", aboutText, []string{"OK"}, func(string) {})
		case 'q':
			showModal("exit", "Are you sure you want to exit?\nAll unsaved progress will be lost.", []string{"Exit", "Cancel"}, func(label string) {
				if label == "Exit" {
					app.Stop()
				}
			})
		}
	default:
		return event
	}
	return nil
}

// showModal displays a modal page and removes it once a button is chosen.
func showModal(name, text string, buttons []string, done func(label string)) {
	modal := ui.NewModal(text, buttons, func(label string) {
		rootPage.RemovePage(name)
		app.SetFocus(gameBoard.Box)
		done(label)
	})
	rootPage.AddPage(name, modal, true, true)
}

// showThemeConfig opens the theme screen. Changes are saved to the config file
// and applied to the board when the screen closes.
func showThemeConfig() {
	var cc *ui.ColorConfigUI
	cc = ui.NewColorConfig(cfg, gameBoard.Session().Board(), cfg.Save, func() {
		rootPage.RemovePage("theme")
		gameBoard.SetConfig(cfg)
		app.SetFocus(gameBoard.Box)
	})
	cc.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			cc.Back()
			return nil
		}
		return event
	})
	rootPage.AddPage("theme", cc.Flex(), true, true)
	app.SetFocus(cc.Flex())
}

// showSquarePrompt asks for a square and moves the cursor there.
func showSquarePrompt() {
	input := tview.NewInputField().
		SetLabel("Go to square: ").
		SetFieldWidth(4)
	input.SetBorder(true)
	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			gameBoard.JumpTo(input.GetText())
		}
		rootPage.RemovePage("goto")
		app.SetFocus(gameBoard.Box)
	})
	frame := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(input, 3, 0, true).
			AddItem(nil, 0, 1, false), 24, 0, true).
		AddItem(nil, 0, 1, false)
	rootPage.AddPage("goto", frame, true, true)
	app.SetFocus(input)
}

// openDebugLog opens the debug log file. Logging is discarded if it cannot be created.
func openDebugLog(c *config.Config) (*log.Logger, func()) {
	path, err := c.LogPath()
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
	if err != nil {
		return log.New(io.Discard, "", 0), func() {}
	}
	return log.New(f, "", log.Ltime|log.Lmicroseconds), func() { f.Close() }
}
