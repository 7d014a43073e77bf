package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/brittlewis12/claude-convo/internal/search"
	"github.com/brittlewis12/claude-convo/internal/store"
)

func resultsFixture(matchCount int) []SessionResult {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	matches := make([]search.Match, matchCount)
	for i := range matches {
		matches[i] = search.Match{
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			Role:      "assistant",
			Snippet:   "the parser handles malformed lines",
			Score:     float64(matchCount - i),
		}
	}
	return []SessionResult{{
		Session: store.Session{
			ID:        "8f14e45f-ceea-467f-9575-6ba3a477b2a9",
			Project:   "my-project",
			StartedAt: start,
		},
		Matches: matches,
	}}
}

func TestRenderResults_Basics(t *testing.T) {
	var buf bytes.Buffer
	RenderResults(&buf, "parser", resultsFixture(2), Options{ForceNoColor: true})
	out := buf.String()

	for _, want := range []string{
		"Found 2 matches in 1 sessions",
		"my-project",
		"8f14e45f",
		"parser handles malformed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("results missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "8f14e45f-ceea") {
		t.Fatalf("session id should be shortened:\n%s", out)
	}
}

func TestRenderResults_CapsMatchesPerSession(t *testing.T) {
	var buf bytes.Buffer
	RenderResults(&buf, "parser", resultsFixture(5), Options{ForceNoColor: true})
	out := buf.String()

	if got := strings.Count(out, "the parser handles malformed lines"); got != 3 {
		t.Fatalf("expected 3 shown matches, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "... 2 more matches in this session") {
		t.Fatalf("overflow note missing:\n%s", out)
	}
}

func TestRenderResults_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	RenderResults(&buf, "nothing", nil, Options{ForceNoColor: true})
	if !strings.Contains(buf.String(), `No matches for "nothing"`) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
