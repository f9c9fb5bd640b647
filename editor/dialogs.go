package editor

import (
	"os"
	"path/filepath"
	"strings"

	"scribe/ui"
)

// FilePicker chooses paths for Open and Save As. done receives "" when the
// user cancels. Pickers may call done before returning or later, from the
// event loop.
type FilePicker interface {
	PickOpen(done func(path string))
	PickSave(defaultExt string, done func(path string))
}

// Prompter shows modal questions and notices.
type Prompter interface {
	Confirm(title, message string, done func(ok bool))
	Message(title, message string)
}

// promptDialogs implements both interfaces with in-terminal dialogs.
type promptDialogs struct {
	e *Editor
}

func (p *promptDialogs) pickPath(title, initial string, done func(string)) {
	d := ui.NewInputDialog(title, "File name:", initial)
	d.OnSubmit = func(value string) {
		p.e.dialog = nil
		done(expandPath(value))
	}
	d.OnCancel = func() {
		p.e.dialog = nil
		done("")
	}
	p.e.dialog = d
}

func (p *promptDialogs) PickOpen(done func(string)) {
	p.pickPath("Open", startDir(p.e.buf.Path), done)
}

func (p *promptDialogs) PickSave(defaultExt string, done func(string)) {
	initial := p.e.buf.Path
	if initial == "" {
		initial = startDir("") + "untitled" + defaultExt
	}
	p.pickPath("Save As", initial, done)
}

func (p *promptDialogs) Confirm(title, message string, done func(bool)) {
	d := ui.NewConfirmDialog(title, message)
	d.OnConfirm = func(ok bool) {
		p.e.dialog = nil
		done(ok)
	}
	p.e.dialog = d
}

func (p *promptDialogs) Message(title, message string) {
	d := ui.NewMessageDialog(title, message)
	d.OnConfirm = func(bool) { p.e.dialog = nil }
	p.e.dialog = d
}

// startDir is the directory prompts start in: the current file's, else the
// working directory. It ends in a separator.
func startDir(current string) string {
	dir := ""
	if current != "" {
		dir = filepath.Dir(current)
	} else if cwd, err := os.Getwd(); err == nil {
		dir = cwd
	}
	if dir == "" {
		return ""
	}
	return dir + string(os.PathSeparator)
}

// expandPath trims the entry and expands a leading ~. Entries naming only
// a directory count as cancelled.
func expandPath(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasSuffix(value, string(os.PathSeparator)) {
		return ""
	}
	if value == "~" || strings.HasPrefix(value, "~"+string(os.PathSeparator)) {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	return value
}
