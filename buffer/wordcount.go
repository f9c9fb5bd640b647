package buffer

import "strings"

// WordCount counts the maximal runs of non-whitespace in text. Runs of
// spaces, tabs and newlines act as one separator, and leading or trailing
// whitespace yields no empty words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func (b *Buffer) WordCount() int {
	return WordCount(b.Text())
}
