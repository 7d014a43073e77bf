// Package search implements BM25 ranking over a session timeline: corpus
// statistics, scoring, snippet extraction, and query-term highlighting.
package search

import (
	"math"
	"strings"
)

// Default BM25 parameters.
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

// Tokenize lowercases text and splits it into whitespace-delimited tokens,
// dropping empties. Tokenizing the re-joined output yields the same tokens.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Index holds collection-wide statistics for one corpus. It is rebuilt
// fresh for every search invocation; there is no cross-run persistence.
type Index struct {
	docCount  int
	avgDocLen float64
	docFreq   map[string]int // documents containing the term at least once
}

// BuildIndex computes corpus statistics over the given document texts.
func BuildIndex(documents []string) *Index {
	idx := &Index{docFreq: make(map[string]int)}

	totalLen := 0
	for _, doc := range documents {
		tokens := Tokenize(doc)
		totalLen += len(tokens)

		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			idx.docFreq[token]++
		}
	}

	idx.docCount = len(documents)
	if idx.docCount > 0 {
		idx.avgDocLen = float64(totalLen) / float64(idx.docCount)
	}
	return idx
}

// DocCount returns the number of indexed documents.
func (idx *Index) DocCount() int { return idx.docCount }

// AvgDocLen returns the mean token count across documents, 0 for an empty
// corpus.
func (idx *Index) AvgDocLen() float64 { return idx.avgDocLen }

// DocFreq returns the number of documents containing term at least once.
func (idx *Index) DocFreq(term string) int { return idx.docFreq[term] }

// Scorer computes BM25 relevance scores against one Index. K1 controls
// term-frequency saturation and B length normalization.
type Scorer struct {
	K1 float64
	B  float64
}

// NewScorer returns a Scorer with the standard parameters.
func NewScorer() Scorer {
	return Scorer{K1: DefaultK1, B: DefaultB}
}

// Score computes the BM25 score of document against query. Query terms
// absent from the document contribute nothing. The idf factor goes negative
// for terms occurring in more than half the corpus, so a document that
// literally contains a query term can still score zero or below; callers
// treat only score > 0 as a match.
func (s Scorer) Score(idx *Index, query, document string) float64 {
	// Degenerate corpus: defined as 0 rather than dividing by zero.
	if idx.docCount == 0 || idx.avgDocLen == 0 {
		return 0
	}

	docTokens := Tokenize(document)
	docLen := float64(len(docTokens))

	termFreq := make(map[string]int, len(docTokens))
	for _, token := range docTokens {
		termFreq[token]++
	}

	score := 0.0
	for _, term := range Tokenize(query) {
		tf := float64(termFreq[term])
		if tf == 0 {
			continue
		}

		df := float64(idx.docFreq[term])
		idf := math.Log((float64(idx.docCount) - df + 0.5) / (df + 0.5))

		normalizedTF := tf * (s.K1 + 1) /
			(tf + s.K1*(1-s.B+s.B*(docLen/idx.avgDocLen)))

		score += idf * normalizedTF
	}
	return score
}
