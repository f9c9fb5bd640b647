package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Highlighter != HighlighterPattern || cfg.TabSize != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.KeywordList()) != 13 {
		t.Fatalf("expected 13 default keywords, got %d", len(cfg.KeywordList()))
	}
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"theme":"nord","highlighter":"chroma","tag_colors":{"keyword":"red"},"keywords":["fn"]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.GetTheme().Name != "Nord" || cfg.Highlighter != HighlighterChroma {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.TagColor("keyword") != tcell.ColorRed {
		t.Fatalf("expected red keyword color, got %v", cfg.TagColor("keyword"))
	}
	if cfg.TagColor("string") != tcell.ColorGreen {
		t.Fatalf("expected default string color")
	}
	if got := cfg.KeywordList(); len(got) != 1 || got[0] != "fn" {
		t.Fatalf("unexpected keywords %v", got)
	}
}

func TestSaveWritesUnderHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Default()
	cfg.Theme = "dark"
	if err := cfg.Save(""); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Theme != "dark" {
		t.Fatalf("expected saved theme, got %q", got.Theme)
	}
}

func TestFindEditorConfigMergesAndStopsAtRoot(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "src")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	os.WriteFile(filepath.Join(outer, ".editorconfig"), []byte("root = true\n[*]\nend_of_line = crlf\ntab_width = 8\n"), 0o644)
	os.WriteFile(filepath.Join(inner, ".editorconfig"), []byte("[*.{py,txt}]\nindent_size = 2\n"), 0o644)

	s := FindEditorConfig(filepath.Join(inner, "notes.txt"))
	if s == nil {
		t.Fatalf("expected settings")
	}
	if s.EndOfLine != "crlf" {
		t.Fatalf("expected crlf from outer file, got %q", s.EndOfLine)
	}
	if s.TabWidth != 8 {
		t.Fatalf("expected tab_width to win over indent_size, got %d", s.TabWidth)
	}

	if s := FindEditorConfig(filepath.Join(inner, "image.png")); s == nil || s.TabWidth != 8 {
		t.Fatalf("expected only outer settings for png, got %+v", s)
	}
}

func TestExpandBraces(t *testing.T) {
	got := expandBraces("*.{py,txt}")
	if len(got) != 2 || got[0] != "*.py" || got[1] != "*.txt" {
		t.Fatalf("unexpected expansion %v", got)
	}
}
