package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileSettings holds the .editorconfig properties the editor honours.
type FileSettings struct {
	TabWidth  int    // 0 means unset
	EndOfLine string // "lf", "crlf" or ""
}

// FindEditorConfig walks from the file's directory towards the root,
// merging matching sections of every .editorconfig it finds until one
// declares root = true. Closer files win. Returns nil when nothing applies.
func FindEditorConfig(filePath string) *FileSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	name := filepath.Base(absPath)

	var found []map[string]string
	for dir := filepath.Dir(absPath); ; {
		props, isRoot := parseEditorConfig(filepath.Join(dir, ".editorconfig"), name)
		if props != nil {
			found = append(found, props)
		}
		if isRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if len(found) == 0 {
		return nil
	}

	merged := make(map[string]string)
	for i := len(found) - 1; i >= 0; i-- {
		for k, v := range found[i] {
			merged[k] = v
		}
	}
	return settingsFromMap(merged)
}

func parseEditorConfig(path, fileName string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	isRoot := false
	matching := false
	preamble := true

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			preamble = false
			matching = matchPattern(line[1:len(line)-1], fileName)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))

		switch {
		case preamble && key == "root":
			isRoot = value == "true"
		case matching:
			props[key] = value
		}
	}

	if len(props) == 0 {
		return nil, isRoot
	}
	return props, isRoot
}

func matchPattern(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if ok, _ := filepath.Match(p, fileName); ok {
			return true
		}
	}
	return false
}

// expandBraces turns "*.{py,txt}" into ["*.py", "*.txt"].
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	closing := strings.IndexByte(pattern[open:], '}')
	if closing < 0 {
		return []string{pattern}
	}
	closing += open

	var out []string
	for _, alt := range strings.Split(pattern[open+1:closing], ",") {
		out = append(out, expandBraces(pattern[:open]+alt+pattern[closing+1:])...)
	}
	return out
}

func settingsFromMap(m map[string]string) *FileSettings {
	s := &FileSettings{}
	if v, ok := m["indent_size"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.TabWidth = n
		}
	}
	if v, ok := m["tab_width"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.TabWidth = n
		}
	}
	if v := m["end_of_line"]; v == "lf" || v == "crlf" {
		s.EndOfLine = v
	}
	if s.TabWidth == 0 && s.EndOfLine == "" {
		return nil
	}
	return s
}
