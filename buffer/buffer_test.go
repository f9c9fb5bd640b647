package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWordCount(t *testing.T) {
	cases := map[string]int{
		"":                  0,
		"   ":               0,
		"  a  bb   c":       3,
		"one\ttwo\nthree\n": 3,
		"\n\nword\n\n":      1,
	}
	for in, want := range cases {
		if got := WordCount(in); got != want {
			t.Fatalf("WordCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	for _, text := range []string{"", "hello", "a\nb\n", "tabs\tand  spaces\n\n\ntrailing", "ünïcödé\n"} {
		b := NewBuffer(4)
		b.SetText(text)
		if err := b.WriteTo(path); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		got, err := Load(path, 4)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.Text() != text {
			t.Fatalf("round trip mismatch: got %q want %q", got.Text(), text)
		}
		if got.Path != path {
			t.Fatalf("expected path %q, got %q", path, got.Path)
		}
	}
}

func TestLoadPreservesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dos.txt")
	raw := "one\r\ntwo\r\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	b, err := Load(path, 4)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if b.LineEnding != "CRLF" || b.Text() != "one\ntwo\n" {
		t.Fatalf("unexpected load result: ending=%s text=%q", b.LineEnding, b.Text())
	}
	if err := b.WriteTo(b.Path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != raw {
		t.Fatalf("expected CRLF preserved, got %q", data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), 4)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestStrayCarriageReturnsBecomeNewlines(t *testing.T) {
	b := NewBuffer(4)
	b.SetText("x\ry\r\nz")
	if got := b.Text(); got != "x\ny\nz" {
		t.Fatalf("expected CR and CRLF normalized, got %q", got)
	}

	b.SetText("ab")
	b.Cursor = Cursor{Line: 0, Col: 1}
	b.InsertChar('\r')
	b.InsertNewline()
	before := b.Text()
	if before != "a\n\nb" {
		t.Fatalf("expected pasted CR to split the line, got %q", before)
	}

	path := filepath.Join(t.TempDir(), "cr.txt")
	if err := b.WriteTo(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path, 4)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Text() != before {
		t.Fatalf("expected %q after reload, got %q", before, got.Text())
	}
}

func TestInsertTextMultiline(t *testing.T) {
	b := NewBuffer(4)
	b.SetText("headtail")
	b.Cursor = Cursor{Line: 0, Col: 4}
	b.InsertText("1\n2\n3")
	if got := b.Text(); got != "head1\n2\n3tail" {
		t.Fatalf("unexpected text %q", got)
	}
	if b.Cursor != (Cursor{Line: 2, Col: 1}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := NewBuffer(4)
	b.SetText("ab\ncd")
	b.Cursor = Cursor{Line: 1, Col: 0}
	b.Backspace()
	if got := b.Text(); got != "abcd" {
		t.Fatalf("unexpected text %q", got)
	}
	if b.Cursor != (Cursor{Line: 0, Col: 2}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestDeleteAtLineEndJoinsNext(t *testing.T) {
	b := NewBuffer(4)
	b.SetText("ab\ncd")
	b.Cursor = Cursor{Line: 0, Col: 2}
	b.Delete()
	if got := b.Text(); got != "abcd" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	b := NewBuffer(4)
	b.SetText("héllo\nwörld")
	sel := NewSelection(Cursor{Line: 1, Col: 2}, Cursor{Line: 0, Col: 1})
	b.Selection = &sel
	if got := b.GetSelectedText(); got != "éllo\nwö" {
		t.Fatalf("unexpected selection %q", got)
	}
	b.DeleteSelection()
	if got := b.Text(); got != "hrld" {
		t.Fatalf("unexpected text after delete %q", got)
	}
	if b.Cursor != (Cursor{Line: 0, Col: 1}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestResetClearsPath(t *testing.T) {
	b := NewBuffer(4)
	b.SetText("x")
	b.Path = "/tmp/x.txt"
	b.Reset()
	if b.Path != "" || b.Text() != "" || b.Dirty {
		t.Fatalf("reset left state behind: %+v", b)
	}
}
