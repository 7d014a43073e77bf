package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/brittlewis12/claude-convo/internal/stats"
)

// weekday display order for the activity chart, Monday first.
var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WriteUsage renders aggregated usage statistics.
func WriteUsage(w io.Writer, usage *stats.Usage, period stats.Period) error {
	fmt.Fprintf(w, "Claude Code Usage Statistics (%s)\n\n", period.Label())

	writeUsageSummary(w, usage)
	writeUsageTokens(w, usage)

	if tools := usage.TopTools(10); len(tools) > 0 {
		fmt.Fprintln(w, "Most Used Tools:")
		writeCountsTable(w, "Tool", "Calls", tools)
	}
	if models := usage.Models(); len(models) > 0 {
		fmt.Fprintln(w, "Model Usage:")
		writeCountsTable(w, "Model", "Messages", models)
	}
	writeWeekdayActivity(w, usage)
	return nil
}

func writeUsageSummary(w io.Writer, usage *stats.Usage) {
	fmt.Fprintln(w, "Sessions:")
	fmt.Fprintf(w, "  Total:          %d\n", usage.Sessions)
	if usage.Sessions > 0 {
		fmt.Fprintf(w, "  Avg messages:   %d per session\n", usage.Messages/usage.Sessions)
		fmt.Fprintf(w, "  Total time:     %s\n", FormatDuration(usage.TotalDuration))
		if usage.Sessions > 1 {
			fmt.Fprintf(w, "  Avg duration:   %s\n", FormatDuration(usage.TotalDuration/time.Duration(usage.Sessions)))
		}
	}
	fmt.Fprintln(w)
}

func writeUsageTokens(w io.Writer, usage *stats.Usage) {
	inputCost, outputCost, totalCost := usage.EstimatedCost()

	fmt.Fprintln(w, "Token Usage:")
	fmt.Fprintf(w, "  Input:          %12s tokens\n", FormatNumber(usage.InputTokens))
	fmt.Fprintf(w, "  Output:         %12s tokens\n", FormatNumber(usage.OutputTokens))
	fmt.Fprintf(w, "  Total:          %12s tokens\n", FormatNumber(usage.InputTokens+usage.OutputTokens))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Estimated Costs:")
	fmt.Fprintf(w, "  Input:          $%8.2f\n", inputCost)
	fmt.Fprintf(w, "  Output:         $%8.2f\n", outputCost)
	fmt.Fprintf(w, "  Total:          $%8.2f\n", totalCost)
	if usage.Sessions > 0 {
		fmt.Fprintf(w, "  Per session:    $%8.2f\n", totalCost/float64(usage.Sessions))
	}
	fmt.Fprintln(w)
}

func writeCountsTable(w io.Writer, nameHeader, countHeader string, counts []stats.NameCount) {
	tw := newTable(w)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{nameHeader, countHeader})
	for _, c := range counts {
		tw.AppendRow(table.Row{c.Name, c.Count})
	}
	_ = tw.Render()
	fmt.Fprintln(w)
}

func writeWeekdayActivity(w io.Writer, usage *stats.Usage) {
	if usage.Sessions == 0 || len(usage.Weekday) == 0 {
		return
	}

	maxCount := 0
	for _, count := range usage.Weekday {
		if count > maxCount {
			maxCount = count
		}
	}

	fmt.Fprintln(w, "Activity by Day:")
	for _, day := range weekdays {
		count := usage.Weekday[day]
		width := 0
		if maxCount > 0 {
			width = count * 20 / maxCount
		}
		bar := strings.Repeat("█", width) + strings.Repeat("░", 20-width)
		pct := count * 100 / usage.Sessions
		fmt.Fprintf(w, "  %s %s %3d%%\n", day.String()[:3], bar, pct)
	}
}
