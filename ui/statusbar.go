package ui

import (
	"scribe/config"

	"github.com/gdamore/tcell/v2"
)

// ReadyText is the status bar's fixed label. Operations never change it.
const ReadyText = "Status: Ready"

type StatusBar struct {
	Text    string
	Message string // temporary notice, drawn instead of Text while set
	IsError bool
	Theme   *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Text: ReadyText}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["light"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)

	// Clear the line
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	text := s.Text
	if s.Message != "" {
		text = s.Message
		if s.IsError {
			style = style.Foreground(tcell.ColorRed).Bold(true)
		}
	}

	col := x + 1
	for _, ch := range text {
		if col >= x+width {
			break
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool     { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                       { return false }
func (s *StatusBar) SetFocused(f bool)                     {}
