package ui

import (
	"unicode"

	"scribe/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type MenuItem struct {
	Label    string
	Shortcut string
	Action   func()
}

type Menu struct {
	Title string
	// Accel is the Alt+<rune> key that opens the menu.
	Accel rune
	Items []MenuItem
}

// MenuBar is the row of menu titles plus the dropdown of the open menu.
type MenuBar struct {
	Menus    []Menu
	Open     int // index of the open menu, -1 when closed
	Selected int // highlighted item in the open menu
	focused  bool

	x, y, w        int
	mouseX, mouseY int

	mousePressX, mousePressY int
	mousePressed             bool

	Theme *config.ColorScheme
}

func NewMenuBar(menus []Menu) *MenuBar {
	return &MenuBar{Menus: menus, Open: -1, mouseX: -1, mouseY: -1}
}

func (mb *MenuBar) IsOpen() bool { return mb.Open >= 0 }

func (mb *MenuBar) OpenMenu(index int) {
	if index < 0 || index >= len(mb.Menus) {
		return
	}
	mb.Open = index
	mb.Selected = 0
	mb.focused = true
}

func (mb *MenuBar) Close() {
	mb.Open = -1
	mb.Selected = 0
	mb.focused = false
}

// OpenByAccel opens the menu bound to Alt+r. It reports whether one matched.
func (mb *MenuBar) OpenByAccel(r rune) bool {
	for i, m := range mb.Menus {
		if m.Accel != 0 && unicode.ToLower(m.Accel) == unicode.ToLower(r) {
			mb.OpenMenu(i)
			return true
		}
	}
	return false
}

// titleSpan returns the columns [start, end) of menu i's title.
func (mb *MenuBar) titleSpan(i int) (int, int) {
	col := mb.x + 1
	for j := 0; j < i; j++ {
		col += runewidth.StringWidth(mb.Menus[j].Title) + 2
	}
	return col, col + runewidth.StringWidth(mb.Menus[i].Title) + 2
}

func (mb *MenuBar) dropdownWidth(m Menu) int {
	label, shortcut := 0, 0
	for _, it := range m.Items {
		label = max(label, runewidth.StringWidth(it.Label))
		shortcut = max(shortcut, runewidth.StringWidth(it.Shortcut))
	}
	w := label + 4
	if shortcut > 0 {
		w += shortcut + 3
	}
	return w
}

func (mb *MenuBar) activate(index int) {
	if mb.Open < 0 {
		return
	}
	items := mb.Menus[mb.Open].Items
	if index < 0 || index >= len(items) {
		return
	}
	action := items[index].Action
	mb.Close()
	if action != nil {
		action()
	}
}

func (mb *MenuBar) Render(screen tcell.Screen, x, y, width, height int) {
	mb.x, mb.y, mb.w = x, y, width

	theme := mb.Theme
	if theme == nil {
		theme = config.Themes["light"]
	}
	barStyle := tcell.StyleDefault.Background(theme.MenuBarBg).Foreground(theme.MenuBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.MenuActiveBg).Foreground(theme.MenuActiveFg).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, barStyle)
	}

	for i, m := range mb.Menus {
		start, _ := mb.titleSpan(i)
		style := barStyle
		if i == mb.Open {
			style = activeStyle
		} else if mb.mouseY == y {
			if s, e := mb.titleSpan(i); mb.mouseX >= s && mb.mouseX < e {
				style = barStyle.Underline(true)
			}
		}
		drawText(screen, start, y, x+width, " "+m.Title+" ", style)
	}

	if mb.Open >= 0 {
		mb.renderDropdown(screen, y+1, x+width, y+height)
	}
}

func (mb *MenuBar) renderDropdown(screen tcell.Screen, top, maxX, maxY int) {
	theme := mb.Theme
	if theme == nil {
		theme = config.Themes["light"]
	}
	style := tcell.StyleDefault.Background(theme.MenuBarBg).Foreground(theme.MenuBarFg)
	selStyle := tcell.StyleDefault.Background(theme.MenuActiveBg).Foreground(theme.MenuActiveFg)

	m := mb.Menus[mb.Open]
	left, _ := mb.titleSpan(mb.Open)
	w := mb.dropdownWidth(m)
	if left+w > maxX {
		left = maxX - w
	}
	if left < mb.x {
		left = mb.x
	}

	for i, it := range m.Items {
		row := top + i
		if row >= maxY {
			break
		}
		st := style
		if i == mb.Selected {
			st = selStyle
		}
		for cx := left; cx < left+w && cx < maxX; cx++ {
			screen.SetContent(cx, row, ' ', nil, st)
		}
		drawText(screen, left+2, row, min(left+w, maxX), it.Label, st)
		if it.Shortcut != "" {
			sx := left + w - 2 - runewidth.StringWidth(it.Shortcut)
			drawText(screen, sx, row, min(left+w, maxX), it.Shortcut, st)
		}
	}
}

func (mb *MenuBar) HandleKey(ev *tcell.EventKey) bool {
	if mb.Open < 0 {
		return false
	}
	items := mb.Menus[mb.Open].Items
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF10:
		mb.Close()
	case tcell.KeyLeft:
		mb.OpenMenu((mb.Open + len(mb.Menus) - 1) % len(mb.Menus))
	case tcell.KeyRight:
		mb.OpenMenu((mb.Open + 1) % len(mb.Menus))
	case tcell.KeyUp:
		if len(items) > 0 {
			mb.Selected = (mb.Selected + len(items) - 1) % len(items)
		}
	case tcell.KeyDown:
		if len(items) > 0 {
			mb.Selected = (mb.Selected + 1) % len(items)
		}
	case tcell.KeyEnter:
		mb.activate(mb.Selected)
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			mb.OpenByAccel(ev.Rune())
		}
	}
	return true
}

// itemAt returns the dropdown item under (mx, my), or -1.
func (mb *MenuBar) itemAt(mx, my int) int {
	if mb.Open < 0 {
		return -1
	}
	m := mb.Menus[mb.Open]
	left, _ := mb.titleSpan(mb.Open)
	w := mb.dropdownWidth(m)
	if left+w > mb.x+mb.w {
		left = mb.x + mb.w - w
	}
	if left < mb.x {
		left = mb.x
	}
	idx := my - (mb.y + 1)
	if idx < 0 || idx >= len(m.Items) || mx < left || mx >= left+w {
		return -1
	}
	return idx
}

func (mb *MenuBar) titleAt(mx, my int) int {
	if my != mb.y {
		return -1
	}
	for i := range mb.Menus {
		if s, e := mb.titleSpan(i); mx >= s && mx < e {
			return i
		}
	}
	return -1
}

// HandleMouse opens menus on title clicks and runs an item when the mouse
// is released over it. While a menu is open, clicks elsewhere close it.
func (mb *MenuBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	btn := ev.Buttons()

	title := mb.titleAt(mx, my)
	item := mb.itemAt(mx, my)
	if title < 0 && item < 0 && my != mb.y {
		mb.mouseX, mb.mouseY = -1, -1
		if mb.Open < 0 {
			mb.mousePressed = false
			return false
		}
		if btn == tcell.Button1 {
			mb.Close()
			mb.mousePressed = false
		}
		return true
	}

	mb.mouseX, mb.mouseY = mx, my
	if item >= 0 {
		mb.Selected = item
	}

	if btn == tcell.Button1 {
		if !mb.mousePressed {
			mb.mousePressX, mb.mousePressY = mx, my
			mb.mousePressed = true
			if title >= 0 {
				if title == mb.Open {
					mb.Close()
				} else {
					mb.OpenMenu(title)
				}
			}
		}
		return true
	}

	if btn == tcell.ButtonNone && mb.mousePressed {
		mb.mousePressed = false
		if item >= 0 {
			mb.activate(item)
		}
		return true
	}
	return true
}

func (mb *MenuBar) IsFocused() bool   { return mb.focused }
func (mb *MenuBar) SetFocused(f bool) { mb.focused = f }
