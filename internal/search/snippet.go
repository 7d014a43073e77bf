package search

import (
	"strings"
	"unicode/utf8"
)

// SnippetContext is the default number of bytes of context kept on each
// side of the first query-term hit.
const SnippetContext = 100

// Snippet extracts a bounded context window around the earliest
// case-insensitive occurrence of any term in text. Window edges are snapped
// to rune boundaries so multi-byte characters are never split, surrounding
// whitespace is trimmed, and an ellipsis marks whichever side was cut. When
// no term occurs, the first 2×context bytes are returned, marked as
// truncated only if the text was longer.
func Snippet(text string, terms []string, context int) string {
	pos := -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		if p, _ := foldIndex(text, term, 0); p >= 0 && (pos < 0 || p < pos) {
			pos = p
		}
	}

	if pos < 0 {
		end := snapForward(text, min(2*context, len(text)))
		out := strings.TrimSpace(text[:end])
		if end < len(text) {
			out += "..."
		}
		return out
	}

	start := snapBackward(text, max(pos-context, 0))
	end := snapForward(text, min(pos+context, len(text)))

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out += "..."
	}
	return out
}

// snapBackward moves i back to the nearest rune boundary at or before it.
func snapBackward(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// snapForward moves i ahead to the nearest rune boundary at or after it.
func snapForward(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
