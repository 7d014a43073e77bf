package search

import (
	"sort"
	"strings"
	"time"
)

// Document is one scorable unit: the assembled text of a normalized event
// plus the metadata surfaced on matches.
type Document struct {
	Text      string
	Timestamp time.Time
	Role      string
}

// Match is one ranked search hit. It is owned solely by the Search call
// that produced it.
type Match struct {
	Timestamp time.Time
	Role      string
	Snippet   string
	Score     float64
}

// Search scores every document against query and returns matches ranked by
// descending score. Only documents scoring strictly above zero are kept;
// term presence alone is not a match because idf can go negative. Ties keep
// original document order. An empty or whitespace-only query yields no
// matches.
func Search(idx *Index, query string, docs []Document) []Match {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	scorer := NewScorer()
	terms := strings.Fields(strings.ToLower(query))

	var matches []Match
	for _, doc := range docs {
		score := scorer.Score(idx, query, doc.Text)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{
			Timestamp: doc.Timestamp,
			Role:      doc.Role,
			Snippet:   Snippet(doc.Text, terms, SnippetContext),
			Score:     score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
