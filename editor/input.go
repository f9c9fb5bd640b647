package editor

import (
	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	// Dialog gets priority: it is modal
	if e.dialog != nil {
		e.dialog.HandleKey(ev)
		return
	}

	if e.menuBar.IsOpen() {
		e.menuBar.HandleKey(ev)
		return
	}

	if isSaveAsKey(ev) {
		e.SaveAs()
		return
	}

	// Global keybindings
	switch ev.Key() {
	case tcell.KeyF10:
		e.menuBar.OpenMenu(0)
		return
	case tcell.KeyCtrlN:
		e.NewFile()
		return
	case tcell.KeyCtrlO:
		e.OpenFile()
		return
	case tcell.KeyCtrlS:
		e.reportError(e.Save())
		return
	case tcell.KeyCtrlX:
		e.Cut()
		return
	case tcell.KeyCtrlC:
		e.Copy()
		return
	case tcell.KeyCtrlV:
		e.Paste()
		return
	case tcell.KeyCtrlK:
		e.WordCount()
		return
	case tcell.KeyCtrlA:
		e.textArea.SelectAll()
		return
	case tcell.KeyCtrlQ:
		e.RequestClose()
		return
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 && e.menuBar.OpenByAccel(ev.Rune()) {
			return
		}
	}

	e.textArea.HandleKey(ev)
}

// isSaveAsKey matches Ctrl+Shift+S, which terminals report either as
// Ctrl+S with Shift or as an 'S' rune with both modifiers.
func isSaveAsKey(ev *tcell.EventKey) bool {
	mods := ev.Modifiers()
	if mods&tcell.ModShift == 0 {
		return false
	}
	if ev.Key() == tcell.KeyCtrlS {
		return true
	}
	return ev.Key() == tcell.KeyRune && mods&tcell.ModCtrl != 0 && (ev.Rune() == 'S' || ev.Rune() == 's')
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	if e.dialog != nil {
		e.dialog.HandleMouse(ev)
		return
	}
	if e.menuBar.HandleMouse(ev) {
		return
	}
	e.textArea.HandleMouse(ev)
}
