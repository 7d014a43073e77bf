package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/brittlewis12/claude-convo/internal/search"
	"github.com/brittlewis12/claude-convo/internal/store"
)

const matchesPerSession = 3

// SessionResult pairs a session with its search matches, best score first.
type SessionResult struct {
	Session store.Session
	Matches []search.Match
}

// RenderResults prints grouped search results, one block per session.
func RenderResults(out io.Writer, query string, results []SessionResult, opts Options) {
	if out == nil {
		out = os.Stdout
	}
	useColor := resolveColorChoice(opts.ForceColor, opts.ForceNoColor, out)

	if len(results) == 0 {
		fmt.Fprintf(out, "No matches for %q\n", query)
		return
	}

	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	fmt.Fprintf(out, "Found %d matches in %d sessions\n", total, len(results))

	emphasize := func(s string) string {
		return colorize(useColor, ansiMatch, s)
	}

	for _, r := range results {
		fmt.Fprintln(out)
		shortID := r.Session.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(out, "%s %s %s\n",
			colorize(useColor, ansiHeader+ansiBold, r.Session.Project),
			colorize(useColor, ansiDim, shortID),
			colorize(useColor, ansiDim, r.Session.StartedAt.Local().Format("2006-01-02 15:04")))

		shown := r.Matches
		if len(shown) > matchesPerSession {
			shown = shown[:matchesPerSession]
		}
		for _, m := range shown {
			label, color := roleBanner(m.Role)
			snippet := search.Highlight(m.Snippet, query, emphasize)
			snippet = strings.ReplaceAll(snippet, "\n", " ")
			fmt.Fprintf(out, "  %s %s %s\n",
				colorize(useColor, ansiDim, m.Timestamp.Local().Format("15:04")),
				colorize(useColor, color, runewidth.FillRight(label, 9)),
				snippet)
		}
		if len(r.Matches) > matchesPerSession {
			fmt.Fprintf(out, "  %s\n", colorize(useColor, ansiDim,
				fmt.Sprintf("... %d more matches in this session", len(r.Matches)-matchesPerSession)))
		}
	}
}
