//go:build native

package editor

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/sqweek/dialog"
)

// nativeDialogs uses the desktop's file chooser and message boxes.
type nativeDialogs struct {
	log *slog.Logger
}

func newNativeDialogs(logger *slog.Logger) (*nativeDialogs, bool) {
	return &nativeDialogs{log: logger}, true
}

func (n *nativeDialogs) result(path string, err error) string {
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			n.log.Error("file chooser failed", "err", err)
		}
		return ""
	}
	return path
}

func (n *nativeDialogs) PickOpen(done func(string)) {
	path, err := dialog.File().Title("Open").Filter("Text files", "txt").Filter("All files", "*").Load()
	done(n.result(path, err))
}

func (n *nativeDialogs) PickSave(defaultExt string, done func(string)) {
	ext := strings.TrimPrefix(defaultExt, ".")
	path, err := dialog.File().Title("Save As").Filter("Text files", ext).Filter("All files", "*").Save()
	done(n.result(path, err))
}

func (n *nativeDialogs) Confirm(title, message string, done func(bool)) {
	done(dialog.Message("%s", message).Title(title).YesNo())
}

func (n *nativeDialogs) Message(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}
