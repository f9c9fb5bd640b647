package editor

import (
	"github.com/gdamore/tcell/v2"
)

// layout: menu bar on row 0, status bar on the last row, text in between.
func (e *Editor) textLayout() (x, y, w, h int) {
	screenW, screenH := e.screen.Size()
	h = screenH - 2
	if h < 0 {
		h = 0
	}
	return 0, 1, screenW, h
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()

	// Set screen default style to use theme background, then clear
	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()

	screenW, screenH := e.screen.Size()

	e.menuBar.Theme = theme
	e.textArea.Theme = theme
	e.statusBar.Theme = theme

	focusText := e.dialog == nil && !e.menuBar.IsOpen()
	e.textArea.SetFocused(focusText)

	x, y, w, h := e.textLayout()
	e.textArea.Render(e.screen, x, y, w, h)

	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	// Drawn after the text so the open dropdown covers it.
	e.menuBar.Render(e.screen, 0, 0, screenW, screenH-1)

	if e.dialog != nil {
		e.dialog.Theme = theme
		e.dialog.Render(e.screen, 0, 0, screenW, screenH)
	}

	e.screen.Show()
}
