package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuColors defines the Nord-inspired color palette for modals and frames.
var MenuColors = struct {
	Border     tcell.Color // Muted blue-gray for borders
	Title      tcell.Color // Bright white for title
	CardBG     tcell.Color // Dark gray background
	ButtonBG   tcell.Color // Button background
	ButtonText tcell.Color // Button text
}{
	Border:     tcell.PaletteColor(60),  // Muted blue-gray
	Title:      tcell.PaletteColor(255), // Bright white
	CardBG:     tcell.PaletteColor(236), // Dark gray
	ButtonBG:   tcell.PaletteColor(60),  // Nord blue
	ButtonText: tcell.PaletteColor(255), // White
}

// NewModal creates a modal dialog styled with MenuColors.
func NewModal(text string, buttons []string, done func(label string)) *tview.Modal {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(buttons).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			done(buttonLabel)
		})
	modal.SetBackgroundColor(MenuColors.CardBG)
	modal.SetTextColor(MenuColors.Title)
	modal.SetButtonBackgroundColor(MenuColors.ButtonBG)
	modal.SetButtonTextColor(MenuColors.ButtonText)
	modal.SetBorderColor(MenuColors.Border)
	return modal
}
