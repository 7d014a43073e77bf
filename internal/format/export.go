package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brittlewis12/claude-convo/internal/session"
	"github.com/brittlewis12/claude-convo/internal/stats"
)

// ExportOptions controls what the Markdown export includes.
type ExportOptions struct {
	SessionID       string
	IncludeThinking bool
	IncludeTools    bool
}

// WriteMarkdown renders a full conversation transcript as Markdown.
func WriteMarkdown(w io.Writer, events []session.Event, opts ExportOptions) error {
	var b strings.Builder

	b.WriteString("# Claude Code Conversation\n\n")
	writeExportHeader(&b, events, opts.SessionID)
	b.WriteString("\n---\n\n")

	for i := range events {
		writeExportEvent(&b, &events[i], opts)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeExportHeader(b *strings.Builder, events []session.Event, sessionID string) {
	fmt.Fprintf(b, "**Session ID**: %s\n", sessionID)
	if len(events) == 0 {
		fmt.Fprintf(b, "**Messages**: 0\n")
		return
	}

	first := events[0].Timestamp
	last := events[len(events)-1].Timestamp
	fmt.Fprintf(b, "**Date**: %s\n", first.Local().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(b, "**Duration**: %s\n", FormatDuration(last.Sub(first)))
	fmt.Fprintf(b, "**Messages**: %d\n", len(events))

	usage := stats.NewUsage()
	usage.AddSession(events, time.Time{})
	if usage.InputTokens > 0 || usage.OutputTokens > 0 {
		_, _, cost := usage.EstimatedCost()
		fmt.Fprintf(b, "**Tokens**: %s → %s ($%.2f)\n",
			FormatNumber(usage.InputTokens), FormatNumber(usage.OutputTokens), cost)
	}
}

func writeExportEvent(b *strings.Builder, event *session.Event, opts ExportOptions) {
	ts := event.Timestamp.Local().Format("15:04:05")

	switch {
	case event.IsUser():
		fmt.Fprintf(b, "## User [%s]\n\n%s\n\n", ts, event.Content)

	case event.IsAssistant():
		fmt.Fprintf(b, "## Assistant [%s]", ts)
		if event.Model != "" {
			fmt.Fprintf(b, " (%s)", event.Model)
		}
		b.WriteString("\n\n")

		if event.Content != "" {
			b.WriteString(event.Content)
			b.WriteString("\n\n")
		}

		if event.Thinking != "" {
			if opts.IncludeThinking {
				b.WriteString("<details>\n<summary>Thinking</summary>\n\n")
				b.WriteString(event.Thinking)
				b.WriteString("\n\n</details>\n\n")
			} else {
				b.WriteString("*[Thinking block omitted - use --include-thinking to include]*\n\n")
			}
		}

		if opts.IncludeTools && event.Tool != nil {
			fmt.Fprintf(b, "### Tool: %s\n\n```json\n%s\n```\n\n",
				event.Tool.Name, PrettyJSON(string(event.Tool.Input)))
		}

		if event.Usage != nil {
			fmt.Fprintf(b, "*Tokens: %d → %d*\n\n",
				event.Usage.InputTokens, event.Usage.OutputTokens)
		}

	case strings.HasPrefix(event.Role, "system:"):
		fmt.Fprintf(b, "## System [%s]\n\n> %s\n\n", ts, event.Content)

	default:
		fmt.Fprintf(b, "## %s [%s]\n\n%s\n\n", event.Role, ts, event.Content)
	}
}

// PrettyJSON indents raw JSON for display, returning the input unchanged
// when it does not parse.
func PrettyJSON(raw string) string {
	if raw == "" {
		return raw
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err == nil {
		return buf.String()
	}
	return raw
}
