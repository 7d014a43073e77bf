// Package format renders project and session listings, usage statistics,
// and Markdown exports.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/brittlewis12/claude-convo/internal/store"
)

// WriteProjects writes project summaries to w in the requested format.
func WriteProjects(w io.Writer, projects []store.Project, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeProjectsTable(w, projects)
	case "plain":
		return writeProjectsPlain(w, projects)
	case "json":
		return writeJSON(w, projects)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteSessions writes session summaries to w in the requested format.
func WriteSessions(w io.Writer, sessions []store.Session, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeSessionsTable(w, sessions)
	case "plain":
		return writeSessionsPlain(w, sessions)
	case "json":
		return writeJSON(w, sessions)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeProjectsTable(w io.Writer, projects []store.Project) error {
	tw := newTable(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"Project", "Sessions", "Size", "Last Activity"})

	for _, p := range projects {
		tw.AppendRow(table.Row{p.Name, p.SessionCount, FormatSize(p.TotalSize), TimeAgo(p.LastModified, time.Now())})
	}
	if len(projects) == 0 {
		tw.AppendRow(table.Row{"(no projects)", 0, "-", "-"})
	}

	_ = tw.Render()
	return nil
}

func writeProjectsPlain(w io.Writer, projects []store.Project) error {
	if _, err := fmt.Fprintln(w, "project\tsessions\tsize_bytes\tlast_modified"); err != nil {
		return err
	}
	for _, p := range projects {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
			p.Name, p.SessionCount, p.TotalSize, p.LastModified.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func writeSessionsTable(w io.Writer, sessions []store.Session) error {
	tw := newTable(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 66},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"Started", "Name", "Messages", "Size", "Preview", "Session ID"})

	for _, s := range sessions {
		tw.AppendRow(table.Row{
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Name,
			s.MessageCount,
			FormatSize(s.Size),
			escapeNewlines(s.Preview),
			s.ID,
		})
	}
	if len(sessions) == 0 {
		tw.AppendRow(table.Row{"-", "(no sessions)", 0, "-", "-", "-"})
	}

	_ = tw.Render()
	return nil
}

func writeSessionsPlain(w io.Writer, sessions []store.Session) error {
	if _, err := fmt.Fprintln(w, "started\tsession_id\tname\tmessage_count\tsize_bytes\tpreview"); err != nil {
		return err
	}
	for _, s := range sessions {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			s.StartedAt.Format(time.RFC3339), s.ID, s.Name, s.MessageCount, s.Size,
			escapeNewlines(s.Preview)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true
	return tw
}

func escapeNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "\\n")
}
