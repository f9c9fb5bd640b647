package ui

import (
	"scribe/buffer"
	"scribe/clipboardx"
	"scribe/config"
	"scribe/highlight"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TextArea draws the document and turns keys and mouse input into edits.
// It is also the surface that cut, copy and paste are delegated to.
type TextArea struct {
	Buffer      *buffer.Buffer
	Highlighter *highlight.Highlighter
	Clipboard   clipboardx.Clipboard
	Theme       *config.ColorScheme
	WordWrap    bool

	// OnChange runs after every edit to the text.
	OnChange func()

	scrollY, scrollX int
	x, y, w, h       int
	focused          bool

	anchor    *buffer.Cursor
	mouseDown bool
	// follow scrolls the cursor into view on the next render.
	follow bool
}

func NewTextArea(buf *buffer.Buffer, hl *highlight.Highlighter, clip clipboardx.Clipboard) *TextArea {
	if clip == nil {
		clip = &clipboardx.Memory{}
	}
	return &TextArea{
		Buffer:      buf,
		Highlighter: hl,
		Clipboard:   clip,
		focused:     true,
		follow:      true,
	}
}

// bufferColToDisplayCol converts a rune index to a screen column, expanding
// tabs and counting wide characters.
func bufferColToDisplayCol(line string, bufCol int, tabSize int) int {
	displayCol := 0
	for i, r := range []rune(line) {
		if i >= bufCol {
			break
		}
		displayCol += runeCells(r, displayCol, tabSize)
	}
	return displayCol
}

// displayColToBufferCol converts a screen column back to a rune index.
func displayColToBufferCol(line string, target int, tabSize int) int {
	if target <= 0 {
		return 0
	}
	displayCol := 0
	for i, r := range []rune(line) {
		if displayCol >= target {
			return i
		}
		displayCol += runeCells(r, displayCol, tabSize)
		if displayCol > target {
			return i
		}
	}
	return buffer.RuneLen(line)
}

func runeCells(r rune, displayCol, tabSize int) int {
	if r == '\t' {
		return tabSize - (displayCol % tabSize)
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func (ta *TextArea) tabSize() int {
	if ta.Buffer.TabSize > 0 {
		return ta.Buffer.TabSize
	}
	return 4
}

// wrapSegments returns the rune index each screen row of line starts at in
// wrap mode. Rows break on display cells, so tabs and wide runes stay inside
// width. A line that exactly fills its last row gets one more, empty row so
// the cursor can sit after its last rune.
func wrapSegments(line string, width, tabSize int) []int {
	starts := []int{0}
	if width <= 0 {
		return starts
	}
	col := 0
	for i, r := range []rune(line) {
		cells := wrapCells(r, col, tabSize, width)
		if col > 0 && col+cells > width {
			starts = append(starts, i)
			col = 0
			cells = wrapCells(r, 0, tabSize, width)
		}
		col += cells
	}
	if col >= width {
		starts = append(starts, buffer.RuneLen(line))
	}
	return starts
}

// wrapCells is runeCells measured from the start of a wrap segment, capped
// at the row width.
func wrapCells(r rune, col, tabSize, width int) int {
	return min(runeCells(r, col, tabSize), width)
}

// segmentEnd is the rune index where segment seg stops.
func segmentEnd(starts []int, seg, runeLen int) int {
	if seg+1 < len(starts) {
		return starts[seg+1]
	}
	return runeLen
}

// segmentOf returns the wrap segment holding rune index col.
func segmentOf(starts []int, col int) int {
	seg := 0
	for i, s := range starts {
		if s <= col {
			seg = i
		}
	}
	return seg
}

// segmentCells is the display width of runes[from:to] within one segment.
func segmentCells(runes []rune, from, to, tabSize, width int) int {
	dc := 0
	for _, r := range runes[from:to] {
		dc += wrapCells(r, dc, tabSize, width)
	}
	return dc
}

func wrapRows(line string, width, tabSize int) int {
	return len(wrapSegments(line, width, tabSize))
}

// Cut copies the selection to the clipboard and removes it. Without a
// selection it does nothing.
func (ta *TextArea) Cut() {
	if !ta.Buffer.HasSelection() {
		return
	}
	ta.Clipboard.Write(ta.Buffer.GetSelectedText())
	ta.Buffer.DeleteSelection()
	ta.anchor = nil
	ta.changed()
}

func (ta *TextArea) Copy() {
	if !ta.Buffer.HasSelection() {
		return
	}
	ta.Clipboard.Write(ta.Buffer.GetSelectedText())
}

// Paste inserts the clipboard text at the cursor, replacing any selection.
func (ta *TextArea) Paste() {
	text := ta.Clipboard.Read()
	if text == "" {
		return
	}
	ta.Buffer.InsertText(text)
	ta.anchor = nil
	ta.changed()
}

// Selection returns the selected text, or "" when nothing is selected.
func (ta *TextArea) Selection() string {
	if !ta.Buffer.HasSelection() {
		return ""
	}
	return ta.Buffer.GetSelectedText()
}

func (ta *TextArea) SelectAll() {
	ta.Buffer.SelectAll()
	ta.anchor = &buffer.Cursor{}
	ta.follow = true
}

// ResetView scrolls back to the top, as after the document is replaced.
func (ta *TextArea) ResetView() {
	ta.scrollX, ta.scrollY = 0, 0
	ta.anchor = nil
	ta.mouseDown = false
	ta.follow = true
}

func (ta *TextArea) changed() {
	ta.follow = true
	if ta.OnChange != nil {
		ta.OnChange()
	}
}

func (ta *TextArea) startOrExtendSelection() {
	if ta.Buffer.Selection == nil || ta.anchor == nil {
		c := ta.Buffer.Cursor
		ta.anchor = &c
	}
}

func (ta *TextArea) extendSelection() {
	if ta.anchor == nil {
		return
	}
	sel := buffer.NewSelection(*ta.anchor, ta.Buffer.Cursor)
	if sel.Empty() {
		ta.Buffer.Selection = nil
		return
	}
	ta.Buffer.Selection = &sel
}

func (ta *TextArea) clearSelection() {
	ta.Buffer.Selection = nil
	ta.anchor = nil
}

func (ta *TextArea) HandleKey(ev *tcell.EventKey) bool {
	buf := ta.Buffer
	shift := ev.Modifiers()&tcell.ModShift != 0

	move := func(fn func()) bool {
		if shift {
			ta.startOrExtendSelection()
		} else {
			ta.clearSelection()
		}
		fn()
		buf.ClampCursor()
		if shift {
			ta.extendSelection()
		}
		ta.follow = true
		return true
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return move(func() {
			if buf.Cursor.Col > 0 {
				buf.Cursor.Col--
			} else if buf.Cursor.Line > 0 {
				buf.Cursor.Line--
				buf.Cursor.Col = buffer.RuneLen(buf.Lines[buf.Cursor.Line])
			}
		})
	case tcell.KeyRight:
		return move(func() {
			if buf.Cursor.Col < buffer.RuneLen(buf.Lines[buf.Cursor.Line]) {
				buf.Cursor.Col++
			} else if buf.Cursor.Line < len(buf.Lines)-1 {
				buf.Cursor.Line++
				buf.Cursor.Col = 0
			}
		})
	case tcell.KeyUp:
		return move(func() { buf.Cursor.Line-- })
	case tcell.KeyDown:
		return move(func() { buf.Cursor.Line++ })
	case tcell.KeyHome:
		return move(func() { buf.Cursor.Col = 0 })
	case tcell.KeyEnd:
		return move(func() { buf.Cursor.Col = buffer.RuneLen(buf.Lines[buf.Cursor.Line]) })
	case tcell.KeyPgUp:
		return move(func() { buf.Cursor.Line -= ta.pageSize() })
	case tcell.KeyPgDn:
		return move(func() { buf.Cursor.Line += ta.pageSize() })
	case tcell.KeyEnter:
		buf.InsertNewline()
	case tcell.KeyTab:
		buf.InsertTab()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		buf.Backspace()
	case tcell.KeyDelete:
		buf.Delete()
	case tcell.KeyEscape:
		ta.clearSelection()
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return false
		}
		buf.InsertChar(ev.Rune())
	default:
		return false
	}
	ta.anchor = nil
	ta.changed()
	return true
}

func (ta *TextArea) pageSize() int {
	if ta.h > 1 {
		return ta.h - 1
	}
	return 1
}

func (ta *TextArea) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	inside := mx >= ta.x && mx < ta.x+ta.w && my >= ta.y && my < ta.y+ta.h
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0 && inside:
		ta.scrollY -= 3
		if ta.scrollY < 0 {
			ta.scrollY = 0
		}
		return true
	case btn&tcell.WheelDown != 0 && inside:
		ta.scrollY += 3
		if last := len(ta.Buffer.Lines) - 1; ta.scrollY > last {
			ta.scrollY = last
		}
		return true
	case btn&tcell.Button1 != 0:
		if !ta.mouseDown {
			if !inside {
				return false
			}
			ta.mouseDown = true
			ta.Buffer.Cursor = ta.positionToCursor(mx, my)
			ta.clearSelection()
			c := ta.Buffer.Cursor
			ta.anchor = &c
			return true
		}
		ta.Buffer.Cursor = ta.positionToCursor(mx, my)
		ta.extendSelection()
		return true
	case btn == tcell.ButtonNone && ta.mouseDown:
		ta.mouseDown = false
		if ta.Buffer.Selection == nil {
			ta.anchor = nil
		}
		return true
	}
	return false
}

// positionToCursor maps a screen cell to a buffer position, clamping cells
// outside the text to the nearest line or column.
func (ta *TextArea) positionToCursor(mx, my int) buffer.Cursor {
	buf := ta.Buffer
	row := my - ta.y
	if row < 0 {
		row = 0
	}
	col := mx - ta.x
	if col < 0 {
		col = 0
	}

	if !ta.WordWrap || ta.w <= 0 {
		line := ta.scrollY + row
		if line >= len(buf.Lines) {
			line = len(buf.Lines) - 1
		}
		return buffer.Cursor{Line: line, Col: displayColToBufferCol(buf.Lines[line], col+ta.scrollX, ta.tabSize())}
	}

	tab := ta.tabSize()
	for line := ta.scrollY; line < len(buf.Lines); line++ {
		starts := wrapSegments(buf.Lines[line], ta.w, tab)
		if row < len(starts) {
			runes := []rune(buf.Lines[line])
			start, end := starts[row], segmentEnd(starts, row, len(runes))
			c, dc := start, 0
			for c < end {
				cells := wrapCells(runes[c], dc, tab, ta.w)
				if dc+cells > col {
					break
				}
				dc += cells
				c++
			}
			// Past the end of a full row stays on that row.
			if c == end && row+1 < len(starts) && end > start {
				c = end - 1
			}
			return buffer.Cursor{Line: line, Col: c}
		}
		row -= len(starts)
	}
	last := len(buf.Lines) - 1
	return buffer.Cursor{Line: last, Col: buffer.RuneLen(buf.Lines[last])}
}

func (ta *TextArea) ensureCursorVisible() {
	buf := ta.Buffer
	buf.ClampCursor()
	if ta.scrollY > buf.Cursor.Line {
		ta.scrollY = buf.Cursor.Line
	}

	if ta.WordWrap {
		ta.scrollX = 0
		tab := ta.tabSize()
		rows := 0
		for i := ta.scrollY; i < buf.Cursor.Line; i++ {
			rows += wrapRows(buf.Lines[i], ta.w, tab)
		}
		rows += segmentOf(wrapSegments(buf.Lines[buf.Cursor.Line], ta.w, tab), buf.Cursor.Col) + 1
		for rows > ta.h && ta.scrollY < buf.Cursor.Line {
			rows -= wrapRows(buf.Lines[ta.scrollY], ta.w, tab)
			ta.scrollY++
		}
		return
	}

	if buf.Cursor.Line >= ta.scrollY+ta.h {
		ta.scrollY = buf.Cursor.Line - ta.h + 1
	}
	dc := bufferColToDisplayCol(buf.Lines[buf.Cursor.Line], buf.Cursor.Col, ta.tabSize())
	if dc < ta.scrollX {
		ta.scrollX = dc
	}
	if dc >= ta.scrollX+ta.w {
		ta.scrollX = dc - ta.w + 1
	}
}

func (ta *TextArea) isSelected(line, col int) bool {
	sel := ta.Buffer.Selection
	return sel != nil && sel.Contains(buffer.Cursor{Line: line, Col: col})
}

// lineTokens returns the styled runs of one visible line.
func (ta *TextArea) lineTokens(styled []highlight.StyledLine, idx int, line string, base tcell.Style) []highlight.Token {
	if idx >= 0 && idx < len(styled) {
		return styled[idx].Tokens
	}
	if line == "" {
		return nil
	}
	return []highlight.Token{{Text: line, Style: base}}
}

func (ta *TextArea) Render(screen tcell.Screen, x, y, width, height int) {
	ta.x, ta.y, ta.w, ta.h = x, y, width, height
	if width <= 0 || height <= 0 {
		return
	}
	theme := ta.Theme
	if theme == nil {
		theme = config.Themes["light"]
	}
	base := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	selStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)

	buf := ta.Buffer
	buf.ClampCursor()
	if ta.follow {
		ta.ensureCursorVisible()
		ta.follow = false
	}
	if ta.scrollY >= len(buf.Lines) {
		ta.scrollY = len(buf.Lines) - 1
	}
	if ta.scrollY < 0 {
		ta.scrollY = 0
	}
	tab := ta.tabSize()

	start := ta.scrollY
	end := start + height
	if end > len(buf.Lines) {
		end = len(buf.Lines)
	}
	var styled []highlight.StyledLine
	if ta.Highlighter != nil {
		styled = ta.Highlighter.HighlightLines(buf.Lines, start, end, base)
	}

	cursorX, cursorY := -1, -1
	row := 0
	for lineIdx := start; lineIdx < len(buf.Lines) && row < height; lineIdx++ {
		line := buf.Lines[lineIdx]
		tokens := ta.lineTokens(styled, lineIdx-start, line, base)

		runes := []rune(line)
		starts := []int{0}
		if ta.WordWrap {
			starts = wrapSegments(line, width, tab)
		}
		rows := len(starts)
		for seg := 0; seg < rows && row < height; seg++ {
			screenY := y + row
			for cx := x; cx < x+width; cx++ {
				screen.SetContent(cx, screenY, ' ', nil, base)
			}

			segStart, segEnd := starts[seg], segmentEnd(starts, seg, len(runes))

			col, displayCol := 0, 0
			for _, tok := range tokens {
				for _, ch := range tok.Text {
					if col < segStart || col >= segEnd {
						col++
						continue
					}
					cells := runeCells(ch, displayCol, tab)
					sx := x + displayCol
					if ta.WordWrap {
						cells = wrapCells(ch, displayCol, tab, width)
					} else {
						sx -= ta.scrollX
					}
					style := tok.Style
					if ta.isSelected(lineIdx, col) {
						style = selStyle
					}
					if sx >= x && sx+cells <= x+width {
						if ch == '\t' {
							for i := 0; i < cells; i++ {
								screen.SetContent(sx+i, screenY, ' ', nil, style)
							}
						} else {
							screen.SetContent(sx, screenY, ch, nil, style)
						}
					}
					displayCol += cells
					col++
				}
			}

			if lineIdx == buf.Cursor.Line {
				c := buf.Cursor.Col
				if !ta.WordWrap || segmentOf(starts, c) == seg {
					var dc int
					if ta.WordWrap {
						dc = segmentCells(runes, segStart, c, tab, width)
					} else {
						dc = bufferColToDisplayCol(line, c, tab) - ta.scrollX
					}
					cursorX, cursorY = x+min(dc, width-1), screenY
				}
			}
			row++
		}
	}
	for ; row < height; row++ {
		for cx := x; cx < x+width; cx++ {
			screen.SetContent(cx, y+row, ' ', nil, base)
		}
	}

	if ta.focused && cursorY >= 0 {
		screen.ShowCursor(cursorX, cursorY)
	} else {
		screen.HideCursor()
	}
}

func (ta *TextArea) IsFocused() bool   { return ta.focused }
func (ta *TextArea) SetFocused(f bool) { ta.focused = f }
