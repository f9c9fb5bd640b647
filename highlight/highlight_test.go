package highlight

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"scribe/config"
)

func hasTag(tags []Tag, want Tag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func TestPatternScannerTagsKeywordCommentAndString(t *testing.T) {
	s := NewPatternScanner(config.DefaultKeywords)
	tags := s.Scan(`def foo(): # comment "str"`)

	if !hasTag(tags, Tag{TagKeyword, 0, 3}) {
		t.Fatalf("expected def tagged as keyword, got %+v", tags)
	}
	if !hasTag(tags, Tag{TagComment, 11, 26}) {
		t.Fatalf("expected comment to end of line, got %+v", tags)
	}
	if !hasTag(tags, Tag{TagString, 21, 26}) {
		t.Fatalf("expected \"str\" tagged as string, got %+v", tags)
	}
}

func TestPatternScannerKeepsSubstringFalsePositives(t *testing.T) {
	tags := NewPatternScanner(config.DefaultKeywords).Scan("fortune")
	if !hasTag(tags, Tag{TagKeyword, 0, 3}) {
		t.Fatalf("expected 'for' inside 'fortune' to be tagged, got %+v", tags)
	}
}

func TestPatternScannerStringsStayOnOneLine(t *testing.T) {
	tags := NewPatternScanner(nil).Scan("x = \"open\ny = 'a' + 'b'")
	var strs []Tag
	for _, tag := range tags {
		if tag.Name == TagString {
			strs = append(strs, tag)
		}
	}
	// Line 2 starts at rune 10; 'a' is at 14..17, 'b' at 20..23.
	if len(strs) != 2 || strs[0] != (Tag{TagString, 14, 17}) || strs[1] != (Tag{TagString, 20, 23}) {
		t.Fatalf("unexpected string tags %+v", strs)
	}
}

func TestPatternScannerCommentsPerLine(t *testing.T) {
	tags := NewPatternScanner(nil).Scan("a # one\nb # two")
	if !hasTag(tags, Tag{TagComment, 2, 7}) || !hasTag(tags, Tag{TagComment, 10, 15}) {
		t.Fatalf("expected one comment tag per line, got %+v", tags)
	}
}

func TestPatternScannerRuneOffsets(t *testing.T) {
	tags := NewPatternScanner([]string{"if"}).Scan("é if")
	if !hasTag(tags, Tag{TagKeyword, 2, 4}) {
		t.Fatalf("expected rune based offsets, got %+v", tags)
	}
}

func TestChromaScannerPython(t *testing.T) {
	tags := NewChromaScanner("python").Scan("def foo(): # c\n")
	if !hasTag(tags, Tag{TagKeyword, 0, 3}) {
		t.Fatalf("expected chroma keyword tag for def, got %+v", tags)
	}
	found := false
	for _, tag := range tags {
		if tag.Name == TagComment && tag.Start == 11 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected chroma comment tag, got %+v", tags)
	}
}

func TestHighlighterRunReplacesTags(t *testing.T) {
	h := New(NewPatternScanner(config.DefaultKeywords), nil)
	h.Run("if x")
	if len(h.Tags()) == 0 {
		t.Fatalf("expected tags after first pass")
	}
	h.Run("plain")
	if len(h.Tags()) != 0 {
		t.Fatalf("expected stale tags to be dropped, got %+v", h.Tags())
	}
	h.Run("if x")
	if len(h.Tags()) != 1 {
		t.Fatalf("expected cached pass to be restored, got %+v", h.Tags())
	}
}

func TestTagNamesForLinesPriority(t *testing.T) {
	h := New(NewPatternScanner(config.DefaultKeywords), nil)
	text := "x = 1\ndef f(): # if \"s\""
	h.Run(text)
	names := h.TagNamesForLines(strings.Split(text, "\n"), 1, 2)
	if len(names) != 1 {
		t.Fatalf("expected one line, got %d", len(names))
	}
	line := names[0]
	if line[0] != TagKeyword {
		t.Fatalf("expected keyword at start, got %q", line[0])
	}
	for c := 9; c < len(line); c++ {
		if line[c] != TagComment {
			t.Fatalf("expected comment to win at col %d, got %q", c, line[c])
		}
	}
}

func TestHighlightLinesAppliesColors(t *testing.T) {
	h := New(NewPatternScanner([]string{"if"}), map[string]tcell.Color{TagKeyword: tcell.ColorBlue})
	lines := []string{"if x"}
	h.Run(lines[0])
	base := tcell.StyleDefault
	styled := h.HighlightLines(lines, 0, 1, base)
	if len(styled) != 1 || len(styled[0].Tokens) != 2 {
		t.Fatalf("unexpected tokens %+v", styled)
	}
	if styled[0].Tokens[0].Text != "if" || styled[0].Tokens[0].Style != base.Foreground(tcell.ColorBlue) {
		t.Fatalf("expected blue keyword token, got %+v", styled[0].Tokens[0])
	}
	if styled[0].Tokens[1].Style != base {
		t.Fatalf("expected base style for the rest")
	}
}
