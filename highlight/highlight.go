package highlight

import (
	"crypto/sha256"

	"github.com/gdamore/tcell/v2"
)

type Token struct {
	Text  string
	Style tcell.Style
}

type StyledLine struct {
	Tokens []Token
}

// maxCacheEntries bounds the pass cache; it is cleared wholesale when full.
const maxCacheEntries = 64

// Highlighter runs whole-document passes and keeps the tags of the most
// recent one. Every pass starts from scratch; nothing is updated incrementally.
type Highlighter struct {
	scanner Scanner
	colors  map[string]tcell.Color
	cache   map[[32]byte][]Tag
	tags    []Tag
}

func New(scanner Scanner, colors map[string]tcell.Color) *Highlighter {
	return &Highlighter{
		scanner: scanner,
		colors:  colors,
		cache:   make(map[[32]byte][]Tag),
	}
}

// SetScanner swaps the scanner and drops cached passes made by the old one.
func (h *Highlighter) SetScanner(s Scanner) {
	h.scanner = s
	h.cache = make(map[[32]byte][]Tag)
}

// Run re-tags the entire text, replacing any tags from earlier passes.
func (h *Highlighter) Run(text string) []Tag {
	key := sha256.Sum256([]byte(text))
	if cached, ok := h.cache[key]; ok {
		h.tags = cached
		return cached
	}
	tags := h.scanner.Scan(text)
	if len(h.cache) >= maxCacheEntries {
		h.cache = make(map[[32]byte][]Tag)
	}
	h.cache[key] = tags
	h.tags = tags
	return tags
}

// Tags returns the tags from the latest pass.
func (h *Highlighter) Tags() []Tag {
	return h.tags
}

func tagPriority(name string) int {
	switch name {
	case TagKeyword:
		return 1
	case TagString:
		return 2
	case TagComment:
		return 3
	}
	return 0
}

// TagNamesForLines resolves, for each rune of lines[startLine:endLine], the
// name of the winning tag ("" when untagged). Comments beat strings, strings
// beat keywords. lines must be the text the current tags were computed on.
func (h *Highlighter) TagNamesForLines(lines []string, startLine, endLine int) [][]string {
	if startLine < 0 {
		startLine = 0
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine >= endLine {
		return nil
	}

	lineStart := make([]int, endLine+1)
	offset := 0
	for i := 0; i < endLine; i++ {
		lineStart[i] = offset
		offset += len([]rune(lines[i])) + 1
	}
	lineStart[endLine] = offset

	result := make([][]string, endLine-startLine)
	for i := startLine; i < endLine; i++ {
		result[i-startLine] = make([]string, len([]rune(lines[i])))
	}

	rangeStart, rangeEnd := lineStart[startLine], lineStart[endLine]
	for _, tag := range h.tags {
		if tag.End <= rangeStart || tag.Start >= rangeEnd {
			continue
		}
		prio := tagPriority(tag.Name)
		for i := startLine; i < endLine; i++ {
			names := result[i-startLine]
			from := tag.Start - lineStart[i]
			to := tag.End - lineStart[i]
			if from < 0 {
				from = 0
			}
			if to > len(names) {
				to = len(names)
			}
			for c := from; c < to; c++ {
				if names[c] == "" || tagPriority(names[c]) < prio {
					names[c] = tag.Name
				}
			}
		}
	}
	return result
}

// HighlightLines groups each line into runs of equal style, with base used
// for untagged text.
func (h *Highlighter) HighlightLines(lines []string, startLine, endLine int, base tcell.Style) []StyledLine {
	names := h.TagNamesForLines(lines, startLine, endLine)
	out := make([]StyledLine, len(names))
	for i, lineNames := range names {
		runes := []rune(lines[startLine+i])
		var tokens []Token
		runStart := 0
		for c := 1; c <= len(runes); c++ {
			if c < len(runes) && lineNames[c] == lineNames[runStart] {
				continue
			}
			tokens = append(tokens, Token{
				Text:  string(runes[runStart:c]),
				Style: h.styleFor(lineNames[runStart], base),
			})
			runStart = c
		}
		out[i] = StyledLine{Tokens: tokens}
	}
	return out
}

func (h *Highlighter) styleFor(name string, base tcell.Style) tcell.Style {
	if name == "" {
		return base
	}
	if fg, ok := h.colors[name]; ok {
		return base.Foreground(fg)
	}
	return base
}
