package editor

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// Run opens the screen, optionally loads path, and processes events until
// the editor quits. A path that does not exist yet becomes the save target.
func (e *Editor) Run(path string) error {
	screen := e.screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return err
		}
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	e.screen = screen

	e.setupFileWatcher(screen)
	stopSignals := e.relaySignals(screen)
	defer stopSignals()

	if path != "" {
		if err := e.LoadFile(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				abs, _ := filepath.Abs(path)
				e.buf.Path = abs
				e.log.Info("starting new file", "path", abs)
			} else {
				e.reportError(err)
			}
		}
	}
	e.Highlight()

	for !e.quit {
		e.clearExpiredMessages()
		e.render()

		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *FileWatchEvent:
			e.handleFileWatchEvent(ev)
		case *CloseRequestEvent:
			e.RequestClose()
		case *messageExpiredEvent:
		}
	}

	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}

	screen.Clear()
	screen.Fini()
	e.log.Info("editor stopped")
	return nil
}

// relaySignals turns termination signals into close requests for the loop.
func (e *Editor) relaySignals(screen tcell.Screen) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				e.log.Info("close requested by signal", "signal", sig.String())
				ev := &CloseRequestEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// File watching

func (e *Editor) setupFileWatcher(screen tcell.Screen) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Graceful degradation - continue without watching
		e.log.Warn("file watcher unavailable", "err", err)
		return
	}
	e.fileWatcher = watcher
	if e.buf.Path != "" {
		e.watchFile(e.buf.Path)
	}

	go func() {
		// Debounce: collect events and send after quiet period
		debounceTimer := time.NewTimer(100 * time.Millisecond)
		debounceTimer.Stop()
		var pendingEvents []fsnotify.Event

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				pendingEvents = append(pendingEvents, event)
				debounceTimer.Reset(100 * time.Millisecond)

			case <-debounceTimer.C:
				for _, event := range pendingEvents {
					ev := &FileWatchEvent{
						Path: event.Name,
						Op:   event.Op,
					}
					ev.SetEventNow()
					screen.PostEvent(ev)
				}
				pendingEvents = nil

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				e.log.Warn("file watcher error", "err", err)
			}
		}
	}()
}

// watchFile watches the directory holding path, replacing the previous watch.
// Directories are watched rather than files so editors that save by rename
// are still seen.
func (e *Editor) watchFile(path string) {
	if e.fileWatcher == nil {
		return
	}
	dir := filepath.Dir(path)
	if dir == e.watchedDir {
		return
	}
	e.unwatch()
	if err := e.fileWatcher.Add(dir); err != nil {
		e.log.Warn("cannot watch directory", "dir", dir, "err", err)
		return
	}
	e.watchedDir = dir
}

func (e *Editor) unwatch() {
	if e.fileWatcher == nil || e.watchedDir == "" {
		return
	}
	_ = e.fileWatcher.Remove(e.watchedDir)
	e.watchedDir = ""
}

// handleFileWatchEvent shows a notice when the open file is changed by
// another program. The document is never reloaded behind the user's back.
func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	if e.buf.Path == "" || filepath.Clean(ev.Path) != filepath.Clean(e.buf.Path) {
		return
	}
	name := displayName(e.buf.Path)

	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		e.setTemporaryError(name + " was removed on disk")
	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		info, err := os.Stat(ev.Path)
		if err != nil {
			return
		}
		// Allow 1 second grace period after our last save
		if !e.buf.LastSaveTime.IsZero() && info.ModTime().Sub(e.buf.LastSaveTime) <= time.Second {
			return
		}
		e.setTemporaryMessage(name + " changed on disk")
		e.log.Info("file changed on disk", "path", e.buf.Path)
	}
}
