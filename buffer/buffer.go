package buffer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// maxFileSize is the largest file Load will read into memory.
const maxFileSize = 100 * 1024 * 1024

var ErrFileTooLarge = errors.New("file too large")

// Buffer is the editor's single document: its text, split into lines, and the
// file it was loaded from or last saved to. An empty Path means the document
// has never been saved.
type Buffer struct {
	Lines      []string
	Path       string
	Cursor     Cursor
	Selection  *Selection
	Dirty      bool
	TabSize    int
	LineEnding string // "LF" or "CRLF", detected on load and preserved on save

	LastSaveTime time.Time
}

func NewBuffer(tabSize int) *Buffer {
	return &Buffer{
		Lines:      []string{""},
		TabSize:    tabSize,
		LineEnding: "LF",
	}
}

// Load reads the whole file at path into a new buffer.
func Load(path string, tabSize int) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w (%d MB), max supported is %d MB", ErrFileTooLarge,
			info.Size()/(1024*1024), maxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	b := NewBuffer(tabSize)
	content := string(data)
	if strings.Contains(content, "\r\n") {
		b.LineEnding = "CRLF"
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	b.setText(content)
	b.Path = path
	return b, nil
}

// Text returns the full contents with lines joined by "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.Lines, "\n")
}

// SetText replaces the entire contents and moves the cursor to the start.
func (b *Buffer) SetText(text string) {
	b.setText(normalizeNewlines(text))
	b.Dirty = true
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines turns CRLF and lone CR into "\n". Lines never hold a
// CR, so the text written on save reads back unchanged.
func normalizeNewlines(text string) string {
	return newlines.Replace(text)
}

func (b *Buffer) setText(text string) {
	b.Lines = strings.Split(text, "\n")
	b.Cursor = Cursor{}
	b.Selection = nil
}

// Reset empties the buffer and forgets its path.
func (b *Buffer) Reset() {
	b.Lines = []string{""}
	b.Path = ""
	b.Cursor = Cursor{}
	b.Selection = nil
	b.Dirty = false
	b.LineEnding = "LF"
}

// BuildSaveContent serializes the buffer exactly as held, re-applying the
// detected line ending. No trailing newline is added or removed.
func (b *Buffer) BuildSaveContent() string {
	eol := "\n"
	if b.LineEnding == "CRLF" {
		eol = "\r\n"
	}
	return strings.Join(b.Lines, eol)
}

// WriteTo overwrites path with the buffer contents and adopts it as the
// buffer's path.
func (b *Buffer) WriteTo(path string) error {
	if path == "" {
		return errors.New("no file path")
	}
	if err := os.WriteFile(path, []byte(b.BuildSaveContent()), 0o644); err != nil {
		return err
	}
	b.Path = path
	b.Dirty = false
	b.LastSaveTime = time.Now()
	return nil
}

// RuneLen returns the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// sliceRunes returns the substring of s between rune columns from and to.
func sliceRunes(s string, from, to int) string {
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

func (b *Buffer) lineLen(line int) int {
	return RuneLen(b.Lines[line])
}

func (b *Buffer) clampCursor() {
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	if b.Cursor.Line < 0 {
		b.Cursor.Line = 0
	}
	if b.Cursor.Line >= len(b.Lines) {
		b.Cursor.Line = len(b.Lines) - 1
	}
	if b.Cursor.Col < 0 {
		b.Cursor.Col = 0
	}
	if n := b.lineLen(b.Cursor.Line); b.Cursor.Col > n {
		b.Cursor.Col = n
	}
}

// ClampCursor keeps the cursor inside the text after external movement.
func (b *Buffer) ClampCursor() {
	b.clampCursor()
}

func (b *Buffer) deleteSelectionIfAny() bool {
	if b.Selection == nil || b.Selection.Empty() {
		b.Selection = nil
		return false
	}
	b.DeleteSelection()
	return true
}

func (b *Buffer) InsertChar(ch rune) {
	b.InsertText(string(ch))
}

// InsertText inserts text at the cursor, replacing the selection if there is one.
func (b *Buffer) InsertText(text string) {
	if text == "" {
		return
	}
	b.deleteSelectionIfAny()
	b.clampCursor()

	text = normalizeNewlines(text)
	line := b.Lines[b.Cursor.Line]
	head := sliceRunes(line, 0, b.Cursor.Col)
	tail := sliceRunes(line, b.Cursor.Col, RuneLen(line))

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.Lines[b.Cursor.Line] = head + text + tail
		b.Cursor.Col += RuneLen(text)
	} else {
		newLines := make([]string, len(parts))
		newLines[0] = head + parts[0]
		copy(newLines[1:], parts[1:])
		last := len(parts) - 1
		newLines[last] = parts[last] + tail

		after := append([]string(nil), b.Lines[b.Cursor.Line+1:]...)
		b.Lines = append(b.Lines[:b.Cursor.Line], newLines...)
		b.Lines = append(b.Lines, after...)

		b.Cursor.Line += last
		b.Cursor.Col = RuneLen(parts[last])
	}
	b.Dirty = true
}

func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

func (b *Buffer) InsertTab() {
	b.InsertText("\t")
}

func (b *Buffer) Backspace() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	if b.Cursor.Col > 0 {
		line := b.Lines[b.Cursor.Line]
		b.Lines[b.Cursor.Line] = sliceRunes(line, 0, b.Cursor.Col-1) + sliceRunes(line, b.Cursor.Col, RuneLen(line))
		b.Cursor.Col--
		b.Dirty = true
		return
	}
	if b.Cursor.Line == 0 {
		return
	}
	prev := b.Lines[b.Cursor.Line-1]
	b.Cursor.Col = RuneLen(prev)
	b.Lines[b.Cursor.Line-1] = prev + b.Lines[b.Cursor.Line]
	b.Lines = append(b.Lines[:b.Cursor.Line], b.Lines[b.Cursor.Line+1:]...)
	b.Cursor.Line--
	b.Dirty = true
}

func (b *Buffer) Delete() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	line := b.Lines[b.Cursor.Line]
	if b.Cursor.Col < RuneLen(line) {
		b.Lines[b.Cursor.Line] = sliceRunes(line, 0, b.Cursor.Col) + sliceRunes(line, b.Cursor.Col+1, RuneLen(line))
		b.Dirty = true
		return
	}
	if b.Cursor.Line >= len(b.Lines)-1 {
		return
	}
	b.Lines[b.Cursor.Line] = line + b.Lines[b.Cursor.Line+1]
	b.Lines = append(b.Lines[:b.Cursor.Line+1], b.Lines[b.Cursor.Line+2:]...)
	b.Dirty = true
}

func (b *Buffer) clampToText(c Cursor) Cursor {
	if c.Line < 0 {
		return Cursor{}
	}
	if c.Line >= len(b.Lines) {
		last := len(b.Lines) - 1
		return Cursor{Line: last, Col: b.lineLen(last)}
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := b.lineLen(c.Line); c.Col > n {
		c.Col = n
	}
	return c
}

func (b *Buffer) DeleteSelection() {
	if b.Selection == nil {
		return
	}
	start := b.clampToText(b.Selection.Start)
	end := b.clampToText(b.Selection.End)
	b.Selection = nil

	first := b.Lines[start.Line]
	last := b.Lines[end.Line]
	joined := sliceRunes(first, 0, start.Col) + sliceRunes(last, end.Col, RuneLen(last))
	b.Lines[start.Line] = joined
	b.Lines = append(b.Lines[:start.Line+1], b.Lines[end.Line+1:]...)

	b.Cursor = start
	b.clampCursor()
	b.Dirty = true
}

func (b *Buffer) GetSelectedText() string {
	if b.Selection == nil {
		return ""
	}
	start := b.clampToText(b.Selection.Start)
	end := b.clampToText(b.Selection.End)

	if start.Line == end.Line {
		return sliceRunes(b.Lines[start.Line], start.Col, end.Col)
	}

	var sb strings.Builder
	first := b.Lines[start.Line]
	sb.WriteString(sliceRunes(first, start.Col, RuneLen(first)))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(sliceRunes(b.Lines[end.Line], 0, end.Col))
	return sb.String()
}

func (b *Buffer) SelectAll() {
	last := len(b.Lines) - 1
	sel := NewSelection(Cursor{}, Cursor{Line: last, Col: b.lineLen(last)})
	b.Selection = &sel
	b.Cursor = sel.End
}

func (b *Buffer) HasSelection() bool {
	return b.Selection != nil && !b.Selection.Empty()
}
