package search

import (
	"math"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("  The Quick\tBROWN\n fox ")
	want := []string{"the", "quick", "brown", "fox"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: want %q, got %q", i, want[i], tokens[i])
		}
	}

	// Re-tokenizing the joined output is a fixed point.
	again := Tokenize(strings.Join(tokens, " "))
	if len(again) != len(tokens) {
		t.Fatalf("tokenize is not idempotent: %v vs %v", tokens, again)
	}
}

func TestBuildIndex_Statistics(t *testing.T) {
	idx := BuildIndex([]string{
		"the quick brown fox",
		"the lazy dog",
		"brown fox hunts the dog",
	})

	if idx.DocCount() != 3 {
		t.Fatalf("unexpected doc count: %d", idx.DocCount())
	}
	// 4 + 3 + 5 tokens across 3 documents.
	if got := idx.AvgDocLen(); got != 4.0 {
		t.Fatalf("unexpected avg doc len: %v", got)
	}
	if got := idx.DocFreq("the"); got != 3 {
		t.Fatalf("df(the) = %d", got)
	}
	if got := idx.DocFreq("brown"); got != 2 {
		t.Fatalf("df(brown) = %d", got)
	}
	if got := idx.DocFreq("missing"); got != 0 {
		t.Fatalf("df(missing) = %d", got)
	}
}

func TestBuildIndex_CountsDocumentsNotOccurrences(t *testing.T) {
	idx := BuildIndex([]string{"echo echo echo"})
	if got := idx.DocFreq("echo"); got != 1 {
		t.Fatalf("repeated term must count once per document, got %d", got)
	}
}

func TestScore_EmptyCorpusIsZero(t *testing.T) {
	idx := BuildIndex(nil)
	if got := NewScorer().Score(idx, "anything", "anything at all"); got != 0 {
		t.Fatalf("expected 0 for empty corpus, got %v", got)
	}
}

func TestScore_AbsentTermContributesNothing(t *testing.T) {
	idx := BuildIndex([]string{"alpha beta", "gamma delta"})
	scorer := NewScorer()

	if got := scorer.Score(idx, "omega", "alpha beta"); got != 0 {
		t.Fatalf("query term absent from document must score 0, got %v", got)
	}
}

func TestScore_RareTermOutranksCommonTerm(t *testing.T) {
	docs := []string{
		"kubernetes deployment failed",
		"kubernetes pod restarted",
		"kubernetes service healthy",
		"database migration failed",
	}
	idx := BuildIndex(docs)
	scorer := NewScorer()

	rare := scorer.Score(idx, "migration", docs[3])
	common := scorer.Score(idx, "kubernetes", docs[0])
	if rare <= common {
		t.Fatalf("rare term should outrank common term: %v <= %v", rare, common)
	}
}

func TestScore_NegativeIDFForUbiquitousTerm(t *testing.T) {
	docs := []string{"the cat", "the dog", "the fox"}
	idx := BuildIndex(docs)
	scorer := NewScorer()

	// df=3, N=3: idf = ln(0.5/3.5) < 0. Presence alone is not a match.
	if got := scorer.Score(idx, "the", docs[0]); got >= 0 {
		t.Fatalf("term in every document should score negative, got %v", got)
	}
}

func TestScore_LengthNormalization(t *testing.T) {
	docs := []string{
		"fox",
		"fox " + strings.Repeat("filler ", 30),
		"unrelated words here",
		"more unrelated words",
		"still nothing relevant",
	}
	idx := BuildIndex(docs)
	scorer := NewScorer()

	short := scorer.Score(idx, "fox", docs[0])
	long := scorer.Score(idx, "fox", docs[1])
	if short <= long {
		t.Fatalf("shorter document should score higher: %v <= %v", short, long)
	}
}

func TestScore_ConfigurableParameters(t *testing.T) {
	docs := []string{
		"fox fox fox fox other words padding this document",
		"fox appears once in here plus some more padding",
		"nothing relevant at all",
		"equally irrelevant content",
		"yet more off topic text",
	}
	idx := BuildIndex(docs)

	// With k1=0 term frequency saturates immediately, so the repeated
	// term gains nothing over a single occurrence in a same-length doc.
	flat := Scorer{K1: 0, B: 0}
	repeated := flat.Score(idx, "fox", docs[0])
	single := flat.Score(idx, "fox", docs[1])
	if math.Abs(repeated-single) > 1e-12 {
		t.Fatalf("k1=0 should ignore term frequency: %v vs %v", repeated, single)
	}

	standard := NewScorer()
	if standard.K1 != DefaultK1 || standard.B != DefaultB {
		t.Fatalf("unexpected default parameters: %+v", standard)
	}
	if standard.Score(idx, "fox", docs[0]) <= standard.Score(idx, "fox", docs[1]) {
		t.Fatalf("default k1 should reward repeated terms")
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	docs := []string{"Rust Compiler Error", "python traceback", "go panic"}
	idx := BuildIndex(docs)
	scorer := NewScorer()

	a := scorer.Score(idx, "RUST", docs[0])
	b := scorer.Score(idx, "rust", docs[0])
	if a != b || a <= 0 {
		t.Fatalf("scoring must be case insensitive: %v vs %v", a, b)
	}
}
