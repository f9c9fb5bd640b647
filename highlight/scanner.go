package highlight

import (
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/dlclark/regexp2"
)

const (
	TagKeyword = "keyword"
	TagString  = "string"
	TagComment = "comment"
)

// Tag marks the rune range [Start, End) of the buffer text.
type Tag struct {
	Name       string
	Start, End int
}

// Scanner produces the full set of tags for a text in one pass.
type Scanner interface {
	Scan(text string) []Tag
}

// PatternScanner tags keywords, quoted strings and '#' comments by plain
// repeated search over the whole text. It has no notion of context, so
// "for" inside "fortune" is a keyword and quotes inside comments are strings.
type PatternScanner struct {
	rules []rule
}

type rule struct {
	tag string
	re  *regexp2.Regexp
}

func NewPatternScanner(keywords []string) *PatternScanner {
	s := &PatternScanner{}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		s.rules = append(s.rules, rule{TagKeyword, regexp2.MustCompile(regexp2.Escape(kw), regexp2.None)})
	}
	s.rules = append(s.rules,
		rule{TagString, regexp2.MustCompile(`".*?"`, regexp2.None)},
		rule{TagString, regexp2.MustCompile(`'.*?'`, regexp2.None)},
		rule{TagComment, regexp2.MustCompile(`#.*$`, regexp2.Multiline)},
	)
	return s
}

func (s *PatternScanner) Scan(text string) []Tag {
	var tags []Tag
	for _, r := range s.rules {
		m, err := r.re.FindStringMatch(text)
		for err == nil && m != nil {
			if m.Length > 0 {
				tags = append(tags, Tag{Name: r.tag, Start: m.Index, End: m.Index + m.Length})
			}
			m, err = r.re.FindNextMatch(m)
		}
	}
	return tags
}

// ChromaScanner maps a chroma lexer's token stream onto the same three tags.
type ChromaScanner struct {
	lexer chroma.Lexer
}

func NewChromaScanner(language string) *ChromaScanner {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &ChromaScanner{lexer: chroma.Coalesce(lexer)}
}

func (s *ChromaScanner) Scan(text string) []Tag {
	iter, err := s.lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}
	limit := utf8.RuneCountInString(text)
	var tags []Tag
	offset := 0
	for _, tok := range iter.Tokens() {
		n := utf8.RuneCountInString(tok.Value)
		if name := tagForToken(tok.Type); name != "" && offset < limit {
			end := offset + n
			if end > limit {
				end = limit
			}
			tags = append(tags, Tag{Name: name, Start: offset, End: end})
		}
		offset += n
	}
	return tags
}

func tagForToken(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Keyword):
		return TagKeyword
	case t.InSubCategory(chroma.LiteralString):
		return TagString
	case t.InCategory(chroma.Comment):
		return TagComment
	}
	return ""
}

// DetectLanguage returns chroma's language name for filename, or "".
func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	if cfg := lexer.Config(); cfg != nil {
		return cfg.Name
	}
	return ""
}
