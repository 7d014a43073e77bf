package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minHighlightLen excludes query words too short to highlight usefully.
const minHighlightLen = 3

// Range is a half-open byte span [Start, End) within the display text.
type Range struct {
	Start int
	End   int
}

// HighlightRanges finds every whole-word, case-insensitive occurrence of
// each query word of length >= 3 in text. Overlapping candidates are
// resolved first-found wins: earlier query words before later ones, earlier
// occurrences before later ones. The returned ranges never overlap and are
// in discovery order.
func HighlightRanges(text, query string) []Range {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= minHighlightLen {
			words = append(words, w)
		}
	}

	var accepted []Range
	for _, word := range words {
		searchPos := 0
		for searchPos < len(text) {
			start, end := foldIndex(text, word, searchPos)
			if start < 0 {
				break
			}
			if wholeWord(text, start, end) && !overlapsAny(accepted, start, end) {
				accepted = append(accepted, Range{Start: start, End: end})
			}
			_, size := utf8.DecodeRuneInString(text[start:])
			searchPos = start + size
		}
	}
	return accepted
}

// foldIndex locates the first occurrence of term in text at or after from,
// comparing runes case-insensitively. Both offsets refer to text itself, so
// case pairs whose byte lengths differ cannot shift later matches.
func foldIndex(text, term string, from int) (start, end int) {
	for i := from; i < len(text); {
		if n, ok := foldMatch(text[i:], term); ok {
			return i, i + n
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}

// foldMatch reports whether s begins with term under per-rune case folding
// and returns the matched byte length within s.
func foldMatch(s, term string) (int, bool) {
	n := 0
	for _, tr := range term {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(r) != unicode.ToLower(tr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// Highlight wraps every accepted occurrence with emphasize. Ranges are
// applied in descending offset order so inserting markup at a later offset
// never invalidates an earlier, not-yet-processed one.
func Highlight(text, query string, emphasize func(string) string) string {
	ranges := HighlightRanges(text, query)
	if len(ranges) == 0 {
		return text
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start > ranges[j].Start })

	out := text
	for _, r := range ranges {
		out = out[:r.Start] + emphasize(out[r.Start:r.End]) + out[r.End:]
	}
	return out
}

// wholeWord reports whether the match at [start, end) is bounded by
// non-alphanumeric characters (or the text edges).
func wholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isAlphanumeric(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isAlphanumeric(r) {
			return false
		}
	}
	return true
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func overlapsAny(ranges []Range, start, end int) bool {
	for _, r := range ranges {
		if start < r.End && end > r.Start {
			return true
		}
	}
	return false
}
