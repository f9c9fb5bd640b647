package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

const (
	HighlighterPattern = "pattern"
	HighlighterChroma  = "chroma"
)

type Config struct {
	TabSize        int               `json:"tab_size"`
	Theme          string            `json:"theme"`
	WordWrap       bool              `json:"word_wrap"`
	Highlighter    string            `json:"highlighter"`
	ChromaLanguage string            `json:"chroma_language"`
	NativeDialogs  bool              `json:"native_dialogs"`
	Keywords       []string          `json:"keywords,omitempty"`
	TagColors      map[string]string `json:"tag_colors,omitempty"`
}

// DefaultKeywords are tagged by the pattern highlighter when no override is configured.
var DefaultKeywords = []string{
	"def", "class", "if", "else", "elif", "for", "while",
	"import", "from", "as", "return", "True", "False",
}

var defaultTagColors = map[string]string{
	"keyword": "blue",
	"string":  "green",
	"comment": "gray",
}

type ColorScheme struct {
	Name          string
	Background    tcell.Color
	Foreground    tcell.Color
	Selection     tcell.Color
	MenuBarBg     tcell.Color
	MenuBarFg     tcell.Color
	MenuActiveBg  tcell.Color
	MenuActiveFg  tcell.Color
	StatusBarBg   tcell.Color
	StatusBarFg   tcell.Color
	DialogBg      tcell.Color
	DialogFg      tcell.Color
	DialogInputBg tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:          "Dark",
		Background:    tcell.ColorBlack,
		Foreground:    tcell.ColorWhite,
		Selection:     tcell.ColorDarkBlue,
		MenuBarBg:     tcell.ColorDarkGray,
		MenuBarFg:     tcell.ColorWhite,
		MenuActiveBg:  tcell.ColorDarkBlue,
		MenuActiveFg:  tcell.ColorWhite,
		StatusBarBg:   tcell.ColorDarkBlue,
		StatusBarFg:   tcell.ColorWhite,
		DialogBg:      tcell.ColorBlack,
		DialogFg:      tcell.ColorWhite,
		DialogInputBg: tcell.ColorDarkBlue,
	},
	"light": {
		Name:          "Light",
		Background:    tcell.ColorWhite,
		Foreground:    tcell.ColorBlack,
		Selection:     tcell.ColorLightBlue,
		MenuBarBg:     tcell.ColorLightGray,
		MenuBarFg:     tcell.ColorBlack,
		MenuActiveBg:  tcell.ColorLightBlue,
		MenuActiveFg:  tcell.ColorBlack,
		StatusBarBg:   tcell.ColorLightGray,
		StatusBarFg:   tcell.ColorBlack,
		DialogBg:      tcell.ColorWhite,
		DialogFg:      tcell.ColorBlack,
		DialogInputBg: tcell.ColorLightGray,
	},
	"monokai": {
		Name:          "Monokai",
		Background:    tcell.NewRGBColor(39, 40, 34),
		Foreground:    tcell.NewRGBColor(248, 248, 242),
		Selection:     tcell.NewRGBColor(73, 72, 62),
		MenuBarBg:     tcell.NewRGBColor(73, 72, 62),
		MenuBarFg:     tcell.NewRGBColor(248, 248, 242),
		MenuActiveBg:  tcell.NewRGBColor(102, 217, 239),
		MenuActiveFg:  tcell.NewRGBColor(39, 40, 34),
		StatusBarBg:   tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:   tcell.NewRGBColor(248, 248, 242),
		DialogBg:      tcell.NewRGBColor(39, 40, 34),
		DialogFg:      tcell.NewRGBColor(248, 248, 242),
		DialogInputBg: tcell.NewRGBColor(73, 72, 62),
	},
	"nord": {
		Name:          "Nord",
		Background:    tcell.NewRGBColor(46, 52, 64),
		Foreground:    tcell.NewRGBColor(236, 239, 244),
		Selection:     tcell.NewRGBColor(67, 76, 94),
		MenuBarBg:     tcell.NewRGBColor(67, 76, 94),
		MenuBarFg:     tcell.NewRGBColor(236, 239, 244),
		MenuActiveBg:  tcell.NewRGBColor(136, 192, 208),
		MenuActiveFg:  tcell.NewRGBColor(46, 52, 64),
		StatusBarBg:   tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:   tcell.NewRGBColor(236, 239, 244),
		DialogBg:      tcell.NewRGBColor(46, 52, 64),
		DialogFg:      tcell.NewRGBColor(236, 239, 244),
		DialogInputBg: tcell.NewRGBColor(67, 76, 94),
	},
	"solarized-dark": {
		Name:          "Solarized Dark",
		Background:    tcell.NewRGBColor(0, 43, 54),
		Foreground:    tcell.NewRGBColor(131, 148, 150),
		Selection:     tcell.NewRGBColor(7, 54, 66),
		MenuBarBg:     tcell.NewRGBColor(7, 54, 66),
		MenuBarFg:     tcell.NewRGBColor(147, 161, 161),
		MenuActiveBg:  tcell.NewRGBColor(38, 139, 210),
		MenuActiveFg:  tcell.NewRGBColor(253, 246, 227),
		StatusBarBg:   tcell.NewRGBColor(7, 54, 66),
		StatusBarFg:   tcell.NewRGBColor(147, 161, 161),
		DialogBg:      tcell.NewRGBColor(0, 43, 54),
		DialogFg:      tcell.NewRGBColor(131, 148, 150),
		DialogInputBg: tcell.NewRGBColor(7, 54, 66),
	},
}

func Default() *Config {
	return &Config{
		TabSize:        4,
		Theme:          "light",
		WordWrap:       true,
		Highlighter:    HighlighterPattern,
		ChromaLanguage: "python",
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["light"]
	}
	return theme
}

// KeywordList returns the configured keywords, or DefaultKeywords when none are set.
func (c *Config) KeywordList() []string {
	if len(c.Keywords) > 0 {
		return c.Keywords
	}
	return DefaultKeywords
}

// TagColor resolves the foreground color for a highlight tag. Unknown or
// unparsable overrides fall back to the built-in color for that tag.
func (c *Config) TagColor(tag string) tcell.Color {
	if name, ok := c.TagColors[tag]; ok {
		if col := tcell.GetColor(name); col != tcell.ColorDefault {
			return col
		}
	}
	if name, ok := defaultTagColors[tag]; ok {
		return tcell.GetColor(name)
	}
	return tcell.ColorDefault
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scribe", "settings.json")
}

// Load reads the settings file at path, or ConfigPath() when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.TabSize <= 0 {
		cfg.TabSize = 4
	}
	return cfg, nil
}

// Save writes the settings to path, or ConfigPath() when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
