package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestMenuBar(log *[]string) *MenuBar {
	item := func(name string) MenuItem {
		return MenuItem{Label: name, Action: func() { *log = append(*log, name) }}
	}
	return NewMenuBar([]Menu{
		{Title: "File", Accel: 'f', Items: []MenuItem{item("New"), item("Open"), item("Save"), item("Save As"), item("Exit")}},
		{Title: "Edit", Accel: 'e', Items: []MenuItem{item("Cut"), item("Copy"), item("Paste"), item("Word Count")}},
	})
}

func newTestScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

func TestMenuBarKeyboardActivatesItem(t *testing.T) {
	var log []string
	mb := newTestMenuBar(&log)
	if !mb.OpenByAccel('E') {
		t.Fatalf("expected Alt+E to open the Edit menu")
	}
	mb.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	mb.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	mb.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	mb.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if len(log) != 1 || log[0] != "Word Count" {
		t.Fatalf("expected Word Count to run, got %v", log)
	}
	if mb.IsOpen() {
		t.Fatalf("menu should close after activating an item")
	}
}

func TestMenuBarLeftRightSwitchesMenus(t *testing.T) {
	var log []string
	mb := newTestMenuBar(&log)
	mb.OpenMenu(0)
	mb.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if mb.Open != 1 {
		t.Fatalf("expected Edit menu open, got %d", mb.Open)
	}
	mb.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if mb.Open != 0 {
		t.Fatalf("expected wrap to File menu, got %d", mb.Open)
	}
	mb.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if mb.IsOpen() || len(log) != 0 {
		t.Fatalf("escape should close without running anything")
	}
}

func TestMenuBarIgnoresKeysWhenClosed(t *testing.T) {
	var log []string
	mb := newTestMenuBar(&log)
	if mb.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Fatalf("closed menu bar should not consume keys")
	}
}

func TestMenuBarMouseClickRunsItem(t *testing.T) {
	var log []string
	mb := newTestMenuBar(&log)
	screen := newTestScreen(t)
	mb.Render(screen, 0, 0, 60, 20)

	// Click the File title.
	mb.HandleMouse(tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone))
	mb.HandleMouse(tcell.NewEventMouse(2, 0, tcell.ButtonNone, tcell.ModNone))
	if mb.Open != 0 {
		t.Fatalf("expected File menu open after click, got %d", mb.Open)
	}
	mb.Render(screen, 0, 0, 60, 20)

	// Second dropdown row is Open.
	mb.HandleMouse(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone))
	mb.HandleMouse(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	if len(log) != 1 || log[0] != "Open" {
		t.Fatalf("expected Open to run, got %v", log)
	}
}

func TestMenuBarRendersTitles(t *testing.T) {
	var log []string
	mb := newTestMenuBar(&log)
	screen := newTestScreen(t)
	mb.Render(screen, 0, 0, 60, 20)

	want := " File  Edit "
	for i, ch := range want {
		got, _, _, _ := screen.GetContent(1+i, 0)
		if got != ch {
			t.Fatalf("col %d: expected %q, got %q", 1+i, ch, got)
		}
	}
}
