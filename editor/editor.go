package editor

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"scribe/buffer"
	"scribe/clipboardx"
	"scribe/config"
	"scribe/highlight"
	"scribe/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Component interface {
	Render(screen tcell.Screen, x, y, width, height int)
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
	IsFocused() bool
	SetFocused(bool)
}

var (
	_ Component = (*ui.MenuBar)(nil)
	_ Component = (*ui.TextArea)(nil)
	_ Component = (*ui.StatusBar)(nil)
	_ Component = (*ui.Dialog)(nil)
)

// EditSurface is the text widget the clipboard commands are forwarded to.
// The editor itself keeps no clipboard state.
type EditSurface interface {
	Cut()
	Copy()
	Paste()
	Selection() string
}

const (
	defaultSaveExt = ".txt"
	messageTimeout = 5 * time.Second
)

type Options struct {
	// Screen replaces the terminal screen, mostly for tests.
	Screen    tcell.Screen
	Clipboard clipboardx.Clipboard
	// Picker overrides the path prompt used by Open and Save As.
	Picker FilePicker
	Logger *slog.Logger
}

// Editor owns the single document and everything drawn around it.
type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	log    *slog.Logger

	buf       *buffer.Buffer
	highlight *highlight.Highlighter

	menuBar   *ui.MenuBar
	textArea  *ui.TextArea
	statusBar *ui.StatusBar
	dialog    *ui.Dialog

	surface  EditSurface
	picker   FilePicker
	prompter Prompter

	quit         bool
	closePending bool

	// File watching
	fileWatcher *fsnotify.Watcher
	watchedDir  string

	// Temporary status messages
	statusMessageTime time.Time
}

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

// CloseRequestEvent asks the loop to run the quit prompt, as when the
// process receives SIGTERM or SIGHUP.
type CloseRequestEvent struct {
	tcell.EventTime
}

// messageExpiredEvent wakes the loop so an expired status message is cleared.
type messageExpiredEvent struct {
	tcell.EventTime
}

func New(cfg *config.Config, opts Options) *Editor {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Editor{
		screen: opts.Screen,
		cfg:    cfg,
		log:    logger,
		buf:    buffer.NewBuffer(cfg.TabSize),
	}

	colors := map[string]tcell.Color{}
	for _, tag := range []string{highlight.TagKeyword, highlight.TagString, highlight.TagComment} {
		colors[tag] = cfg.TagColor(tag)
	}
	e.highlight = highlight.New(e.newScanner(cfg.ChromaLanguage), colors)

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboardx.NewSystem()
	}
	e.textArea = ui.NewTextArea(e.buf, e.highlight, clip)
	e.textArea.WordWrap = cfg.WordWrap
	e.textArea.OnChange = e.onTextChanged
	e.surface = e.textArea

	e.statusBar = ui.NewStatusBar()
	e.menuBar = ui.NewMenuBar(e.menus())

	tui := &promptDialogs{e: e}
	e.picker, e.prompter = tui, tui
	if cfg.NativeDialogs {
		if native, ok := newNativeDialogs(logger); ok {
			e.picker, e.prompter = native, native
		} else {
			logger.Warn("native dialogs requested but not built in; using prompts")
		}
	}
	if opts.Picker != nil {
		e.picker = opts.Picker
	}

	e.Highlight()
	return e
}

func (e *Editor) newScanner(language string) highlight.Scanner {
	if e.cfg.Highlighter == config.HighlighterChroma {
		return highlight.NewChromaScanner(language)
	}
	return highlight.NewPatternScanner(e.cfg.KeywordList())
}

func (e *Editor) menus() []ui.Menu {
	return []ui.Menu{
		{Title: "File", Accel: 'f', Items: []ui.MenuItem{
			{Label: "New", Shortcut: "Ctrl+N", Action: e.NewFile},
			{Label: "Open", Shortcut: "Ctrl+O", Action: e.OpenFile},
			{Label: "Save", Shortcut: "Ctrl+S", Action: func() { e.reportError(e.Save()) }},
			{Label: "Save As", Shortcut: "Ctrl+Shift+S", Action: e.SaveAs},
			{Label: "Exit", Action: e.Exit},
		}},
		{Title: "Edit", Accel: 'e', Items: []ui.MenuItem{
			{Label: "Cut", Shortcut: "Ctrl+X", Action: e.Cut},
			{Label: "Copy", Shortcut: "Ctrl+C", Action: e.Copy},
			{Label: "Paste", Shortcut: "Ctrl+V", Action: e.Paste},
			{Label: "Word Count", Shortcut: "Ctrl+K", Action: func() { e.WordCount() }},
		}},
	}
}

// Buffer returns the document being edited.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Path returns the document's file path, "" when it has none.
func (e *Editor) Path() string { return e.buf.Path }

func (e *Editor) Text() string { return e.buf.Text() }

func (e *Editor) Quitting() bool { return e.quit }

// NewFile discards the document and its path without asking.
func (e *Editor) NewFile() {
	if e.buf.Dirty {
		e.log.Warn("discarding unsaved changes", "path", e.buf.Path)
	}
	e.buf.Reset()
	e.buf.TabSize = e.cfg.TabSize
	e.textArea.ResetView()
	e.unwatch()
	if e.cfg.Highlighter == config.HighlighterChroma {
		e.highlight.SetScanner(e.newScanner(e.cfg.ChromaLanguage))
	}
	e.Highlight()
	e.log.Info("new document")
}

// OpenFile asks for a path and loads it. A cancelled prompt does nothing;
// a failed read leaves the document untouched and shows the error.
func (e *Editor) OpenFile() {
	e.picker.PickOpen(func(path string) {
		if path == "" {
			return
		}
		e.reportError(e.LoadFile(path))
	})
}

// LoadFile replaces the document with the contents of path.
func (e *Editor) LoadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	buf, err := buffer.Load(abs, e.cfg.TabSize)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if ec := config.FindEditorConfig(abs); ec != nil && ec.TabWidth > 0 {
		buf.TabSize = ec.TabWidth
	}

	e.buf = buf
	e.textArea.Buffer = buf
	e.textArea.ResetView()

	if e.cfg.Highlighter == config.HighlighterChroma {
		if lang := highlight.DetectLanguage(abs); lang != "" {
			e.highlight.SetScanner(e.newScanner(lang))
		}
	}
	e.Highlight()
	e.watchFile(abs)

	e.log.Info("opened file", "path", abs, "lines", len(buf.Lines))
	return nil
}

// ReplaceText swaps the whole text and re-runs highlighting. The path is kept.
func (e *Editor) ReplaceText(text string) {
	e.buf.SetText(text)
	e.textArea.ResetView()
	e.Highlight()
}

// Save writes to the current path without prompting, or falls back to
// Save As when the document has never been saved.
func (e *Editor) Save() error {
	if e.buf.Path == "" {
		e.SaveAs()
		return nil
	}
	return e.WriteFile(e.buf.Path)
}

// SaveAs asks for a destination and writes there. Names without an
// extension get ".txt".
func (e *Editor) SaveAs() {
	e.picker.PickSave(defaultSaveExt, func(path string) {
		if path == "" {
			return
		}
		e.reportError(e.WriteFile(withDefaultExt(path, defaultSaveExt)))
	})
}

// saveThen saves like Save and hands the outcome to done once any prompt
// has been answered. A cancelled prompt reports nil.
func (e *Editor) saveThen(done func(error)) {
	if e.buf.Path != "" {
		done(e.WriteFile(e.buf.Path))
		return
	}
	e.picker.PickSave(defaultSaveExt, func(path string) {
		if path == "" {
			done(nil)
			return
		}
		done(e.WriteFile(withDefaultExt(path, defaultSaveExt)))
	})
}

// WriteFile writes the full text to path and adopts path as the document's.
func (e *Editor) WriteFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if e.buf.Path == "" {
		e.applyFileSettings(abs)
	}
	if err := e.buf.WriteTo(abs); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	e.watchFile(abs)
	e.log.Info("saved file", "path", abs)
	return nil
}

// applyFileSettings applies .editorconfig to a document that is about to
// get its first path. Loaded files keep the line ending they were read with.
func (e *Editor) applyFileSettings(path string) {
	ec := config.FindEditorConfig(path)
	if ec == nil {
		return
	}
	if ec.TabWidth > 0 {
		e.buf.TabSize = ec.TabWidth
	}
	switch ec.EndOfLine {
	case "crlf":
		e.buf.LineEnding = "CRLF"
	case "lf":
		e.buf.LineEnding = "LF"
	}
}

func withDefaultExt(path, ext string) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}

func (e *Editor) Cut()   { e.surface.Cut() }
func (e *Editor) Copy()  { e.surface.Copy() }
func (e *Editor) Paste() { e.surface.Paste() }

// WordCount counts whitespace separated words and shows the total.
func (e *Editor) WordCount() int {
	n := e.buf.WordCount()
	e.prompter.Message("Word Count", fmt.Sprintf("Total Words: %d", n))
	return n
}

// Highlight re-tags the whole document from scratch.
func (e *Editor) Highlight() {
	e.highlight.Run(e.buf.Text())
}

func (e *Editor) onTextChanged() {
	e.Highlight()
}

// RequestClose asks whether to quit. On OK the document is saved and the
// editor exits; a failed save is logged and does not keep it open. On
// Cancel nothing changes.
func (e *Editor) RequestClose() {
	if e.closePending {
		return
	}
	e.closePending = true
	e.prompter.Confirm("Quit", "Do you want to quit?", func(ok bool) {
		e.closePending = false
		if !ok {
			e.log.Info("close cancelled")
			return
		}
		e.saveThen(func(err error) {
			if err != nil {
				e.log.Error("save on close failed", "err", err)
			}
			e.quit = true
		})
	})
}

// Exit quits immediately without saving.
func (e *Editor) Exit() {
	if e.buf.Dirty {
		e.log.Warn("exiting with unsaved changes", "path", e.buf.Path)
	}
	e.log.Info("exit")
	e.quit = true
}

func (e *Editor) reportError(err error) {
	if err == nil {
		return
	}
	e.log.Error("operation failed", "err", err)
	e.prompter.Message("Error", err.Error())
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
	e.scheduleMessageExpiry()
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
	e.scheduleMessageExpiry()
}

func (e *Editor) scheduleMessageExpiry() {
	screen := e.screen
	if screen == nil {
		return
	}
	time.AfterFunc(messageTimeout+50*time.Millisecond, func() {
		ev := &messageExpiredEvent{}
		ev.SetEventNow()
		screen.PostEvent(ev)
	})
}

// clearExpiredMessages clears status messages that have expired
func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > messageTimeout {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
		e.statusMessageTime = time.Time{}
	}
}

func displayName(path string) string {
	if path == "" {
		return "untitled"
	}
	return strings.TrimSpace(filepath.Base(path))
}
