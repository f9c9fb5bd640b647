package ui

import (
	"strings"

	"scribe/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogInput
	DialogConfirm
	DialogMessage
)

const (
	choiceOK = iota
	choiceCancel
)

// Dialog is a modal box drawn over the text area. Input dialogs collect a
// line of text, confirm dialogs offer OK and Cancel, message dialogs only OK.
type Dialog struct {
	Type    DialogType
	Title   string
	Message string
	Prompt  string
	Input   string
	Cursor  int
	Choice  int
	focused bool

	Theme *config.ColorScheme

	// Callbacks
	OnSubmit  func(value string)
	OnCancel  func()
	OnConfirm func(ok bool)

	buttons      []buttonHit
	mousePressed bool
	mousePressX  int
	mousePressY  int
}

type buttonHit struct {
	x, y, w int
	choice  int
}

func NewInputDialog(title, prompt, initial string) *Dialog {
	return &Dialog{
		Type:    DialogInput,
		Title:   title,
		Prompt:  prompt,
		Input:   initial,
		Cursor:  len([]rune(initial)),
		focused: true,
	}
}

func NewConfirmDialog(title, message string) *Dialog {
	return &Dialog{
		Type:    DialogConfirm,
		Title:   title,
		Message: message,
		Choice:  choiceOK,
		focused: true,
	}
}

func NewMessageDialog(title, message string) *Dialog {
	return &Dialog{
		Type:    DialogMessage,
		Title:   title,
		Message: message,
		focused: true,
	}
}

func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if col+w > maxX {
			break
		}
		screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	theme := d.Theme
	if theme == nil {
		theme = config.Themes["light"]
	}
	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	borderStyle := bgStyle
	titleStyle := bgStyle.Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	buttonStyle := bgStyle
	activeButtonStyle := bgStyle.Reverse(true)

	lines := strings.Split(d.Message, "\n")
	if d.Type == DialogInput {
		lines = []string{d.Prompt}
	}

	dialogW := runewidth.StringWidth(d.Title) + 6
	for _, l := range lines {
		if w := runewidth.StringWidth(l) + 6; w > dialogW {
			dialogW = w
		}
	}
	if d.Type == DialogInput && dialogW < 50 {
		dialogW = 50
	}
	if dialogW < 30 {
		dialogW = 30
	}
	if dialogW > width-2 {
		dialogW = width - 2
	}
	// border, blank, message lines, blank, [input, blank,] buttons, border
	dialogH := len(lines) + 5
	if d.Type == DialogInput {
		dialogH += 2
	}
	if dialogH > height {
		dialogH = height
	}
	if dialogW < 4 || dialogH < 3 {
		return
	}
	dialogX := x + (width-dialogW)/2
	dialogY := y + (height-dialogH)/2

	// Draw dialog box background
	for dy := 0; dy < dialogH; dy++ {
		for dx := 0; dx < dialogW; dx++ {
			screen.SetContent(dialogX+dx, dialogY+dy, ' ', nil, bgStyle)
		}
	}

	// Draw border
	for dx := 0; dx < dialogW; dx++ {
		screen.SetContent(dialogX+dx, dialogY, '─', nil, borderStyle)
		screen.SetContent(dialogX+dx, dialogY+dialogH-1, '─', nil, borderStyle)
	}
	for dy := 0; dy < dialogH; dy++ {
		screen.SetContent(dialogX, dialogY+dy, '│', nil, borderStyle)
		screen.SetContent(dialogX+dialogW-1, dialogY+dy, '│', nil, borderStyle)
	}
	screen.SetContent(dialogX, dialogY, '┌', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY, '┐', nil, borderStyle)
	screen.SetContent(dialogX, dialogY+dialogH-1, '└', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY+dialogH-1, '┘', nil, borderStyle)

	title := " " + d.Title + " "
	titleX := dialogX + (dialogW-runewidth.StringWidth(title))/2
	drawText(screen, titleX, dialogY, dialogX+dialogW-1, title, titleStyle)

	innerX := dialogX + 3
	innerMax := dialogX + dialogW - 3
	row := dialogY + 2
	for _, l := range lines {
		drawText(screen, innerX, row, innerMax, l, bgStyle)
		row++
	}
	row++

	if d.Type == DialogInput {
		d.renderInputField(screen, innerX, row, innerMax-innerX, inputStyle)
		row += 2
	}

	d.buttons = d.buttons[:0]
	if d.Type == DialogInput {
		// Input dialogs submit with Enter; no buttons.
		return
	}
	labels := []string{"[ OK ]"}
	if d.Type == DialogConfirm {
		labels = append(labels, "[ Cancel ]")
	}
	total := 0
	for _, l := range labels {
		total += len(l) + 2
	}
	bx := dialogX + (dialogW-total)/2 + 1
	for i, l := range labels {
		style := buttonStyle
		if i == d.Choice {
			style = activeButtonStyle
		}
		drawText(screen, bx, row, dialogX+dialogW-1, l, style)
		d.buttons = append(d.buttons, buttonHit{x: bx, y: row, w: len(l), choice: i})
		bx += len(l) + 2
	}
}

func (d *Dialog) renderInputField(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	runes := []rune(d.Input)
	// Keep the cursor in view when the input is longer than the field.
	start := 0
	if d.Cursor >= width {
		start = d.Cursor - width + 1
	}
	col := x
	for i := start; i < len(runes) && col < x+width; i++ {
		st := style
		if i == d.Cursor {
			st = style.Reverse(true)
		}
		screen.SetContent(col, y, runes[i], nil, st)
		col++
	}
	if d.Cursor >= len(runes) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	switch d.Type {
	case DialogConfirm, DialogMessage:
		return d.handleChoiceKey(ev)
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) confirm(ok bool) {
	if d.OnConfirm != nil {
		d.OnConfirm(ok)
	}
}

func (d *Dialog) handleChoiceKey(ev *tcell.EventKey) bool {
	buttons := 1
	if d.Type == DialogConfirm {
		buttons = 2
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		d.confirm(d.Choice == choiceOK)
	case tcell.KeyEscape:
		if d.Type == DialogMessage {
			d.confirm(true)
		} else {
			d.confirm(false)
		}
	case tcell.KeyLeft, tcell.KeyBacktab:
		d.Choice = (d.Choice + buttons - 1) % buttons
	case tcell.KeyRight, tcell.KeyTab:
		d.Choice = (d.Choice + 1) % buttons
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'o', 'O', 'y', 'Y':
			d.confirm(true)
		case 'c', 'C', 'n', 'N':
			if d.Type == DialogConfirm {
				d.confirm(false)
			}
		case ' ':
			d.confirm(d.Choice == choiceOK)
		}
	}
	// Modal: every key is consumed.
	return true
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			runes := []rune(d.Input)
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
		}
	case tcell.KeyDelete:
		runes := []rune(d.Input)
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
		}
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
	case tcell.KeyRight:
		if d.Cursor < len([]rune(d.Input)) {
			d.Cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		d.Cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		d.Cursor = len([]rune(d.Input))
	case tcell.KeyCtrlU:
		d.Input = ""
		d.Cursor = 0
	case tcell.KeyRune:
		runes := []rune(d.Input)
		d.Input = string(runes[:d.Cursor]) + string(ev.Rune()) + string(runes[d.Cursor:])
		d.Cursor++
	}
	return true
}

// HandleMouse presses a button when the mouse is released over the same
// cell it was pressed on.
func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	switch ev.Buttons() {
	case tcell.Button1:
		if !d.mousePressed {
			d.mousePressX, d.mousePressY = mx, my
			d.mousePressed = true
		}
	case tcell.ButtonNone:
		if !d.mousePressed {
			return true
		}
		d.mousePressed = false
		if mx != d.mousePressX || my != d.mousePressY {
			return true
		}
		for _, b := range d.buttons {
			if my == b.y && mx >= b.x && mx < b.x+b.w {
				d.Choice = b.choice
				d.confirm(b.choice == choiceOK)
				break
			}
		}
	}
	return true
}

func (d *Dialog) IsFocused() bool   { return d.focused }
func (d *Dialog) SetFocused(f bool) { d.focused = f }
