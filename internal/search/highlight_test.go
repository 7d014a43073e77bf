package search

import (
	"strings"
	"testing"
)

func brackets(s string) string { return "[" + s + "]" }

func TestHighlight_WholeWordOnly(t *testing.T) {
	got := Highlight("cat concatenate cat", "cat", brackets)
	if got != "[cat] concatenate [cat]" {
		t.Fatalf("substring inside a larger word must not highlight: %q", got)
	}
}

func TestHighlight_CaseInsensitive(t *testing.T) {
	got := Highlight("Error ERROR error", "error", brackets)
	if got != "[Error] [ERROR] [error]" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestHighlight_ShortWordsSkipped(t *testing.T) {
	got := Highlight("go to the park", "go to park", brackets)
	if got != "go to the [park]" {
		t.Fatalf("words under 3 bytes must be skipped: %q", got)
	}
}

func TestHighlight_PunctuationBoundaries(t *testing.T) {
	got := Highlight("fix(parser): the parser, obviously", "parser", brackets)
	if got != "fix([parser]): the [parser], obviously" {
		t.Fatalf("punctuation neighbors count as word boundaries: %q", got)
	}
}

func TestHighlight_NoOverlappingRanges(t *testing.T) {
	// "foobar" matches the first query word; the second word "foo" can no
	// longer claim the overlapping prefix and has no standalone occurrence.
	got := Highlight("foobar", "foobar foo", brackets)
	if got != "[foobar]" {
		t.Fatalf("overlap must resolve first-found wins: %q", got)
	}
	if strings.Count(got, "[") != 1 {
		t.Fatalf("expected exactly one emphasis span: %q", got)
	}
}

func TestHighlight_NoMatchesReturnsInput(t *testing.T) {
	text := "nothing to see here"
	if got := Highlight(text, "absent", brackets); got != text {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Highlight(text, "", brackets); got != text {
		t.Fatalf("empty query must be a no-op: %q", got)
	}
}

func TestHighlight_MultipleWordsApplyCleanly(t *testing.T) {
	got := Highlight("quick brown fox jumps", "fox quick", brackets)
	if got != "[quick] brown [fox] jumps" {
		t.Fatalf("later-offset insertions must not shift earlier ranges: %q", got)
	}
}

func TestHighlight_IdempotentWithoutMarkup(t *testing.T) {
	text := "the parser drops malformed parser lines"
	identity := func(s string) string { return s }

	once := Highlight(text, "parser lines", identity)
	twice := Highlight(once, "parser lines", identity)
	if once != text || twice != once {
		t.Fatalf("identity emphasis must be a fixed point: %q, %q", once, twice)
	}

	first := HighlightRanges(text, "parser lines")
	second := HighlightRanges(text, "parser lines")
	if len(first) != len(second) {
		t.Fatalf("range discovery not deterministic: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("range %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestHighlightRanges_SpansMatchText(t *testing.T) {
	text := "résumé review résumé"
	ranges := HighlightRanges(text, "résumé")
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %v", ranges)
	}
	for _, r := range ranges {
		if text[r.Start:r.End] != "résumé" {
			t.Fatalf("range does not cover the word: %q", text[r.Start:r.End])
		}
	}
}

func TestHighlightRanges_StableAfterWidthChangingFold(t *testing.T) {
	// Lowercasing U+0130 grows it by a byte; offsets after it must not drift.
	text := "İstanbul parser notes"
	ranges := HighlightRanges(text, "parser")
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %v", ranges)
	}
	if got := text[ranges[0].Start:ranges[0].End]; got != "parser" {
		t.Fatalf("range drifted off the word: %q", got)
	}

	if got := Highlight(text, "parser", brackets); got != "İstanbul [parser] notes" {
		t.Fatalf("unexpected: %q", got)
	}
}
