//go:build !native

package editor

import "log/slog"

type nativeDialogs struct {
	promptDialogs
}

// newNativeDialogs reports false: desktop dialogs need the native build tag.
func newNativeDialogs(*slog.Logger) (*nativeDialogs, bool) {
	return nil, false
}
