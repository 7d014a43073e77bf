// Package stats aggregates usage statistics over normalized session events.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/brittlewis12/claude-convo/internal/session"
)

// Estimated cost per 1K tokens.
const (
	inputCostPer1K  = 0.015
	outputCostPer1K = 0.075
)

// Period selects the reporting window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a period flag value.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return Period(value), nil
	default:
		return "", fmt.Errorf("invalid period %q: use day, week, month, or all", value)
	}
}

// Start returns the earliest timestamp included in the window ending at now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// Label returns the human-readable window description.
func (p Period) Label() string {
	switch p {
	case PeriodDay:
		return "Last 24 hours"
	case PeriodWeek:
		return "Last 7 days"
	case PeriodMonth:
		return "Last 30 days"
	default:
		return "All time"
	}
}

// Usage accumulates statistics across sessions.
type Usage struct {
	Sessions      int
	Messages      int
	TotalDuration time.Duration
	InputTokens   int64
	OutputTokens  int64
	ToolCalls     map[string]int
	ModelUse      map[string]int
	Weekday       map[time.Weekday]int
}

// NewUsage returns an empty accumulator.
func NewUsage() *Usage {
	return &Usage{
		ToolCalls: make(map[string]int),
		ModelUse:  make(map[string]int),
		Weekday:   make(map[time.Weekday]int),
	}
}

// AddSession folds one session timeline into the totals. Sessions starting
// before since are skipped entirely; within an included session, only
// events at or after since are counted.
func (u *Usage) AddSession(events []session.Event, since time.Time) {
	if len(events) == 0 {
		return
	}
	start := events[0].Timestamp
	if start.Before(since) {
		return
	}

	u.Sessions++
	u.Weekday[start.Weekday()]++

	if last := events[len(events)-1].Timestamp; last.After(start) {
		u.TotalDuration += last.Sub(start)
	}

	for i := range events {
		event := &events[i]
		if event.Timestamp.Before(since) {
			continue
		}
		u.Messages++

		if !event.IsAssistant() {
			continue
		}
		if event.Usage != nil {
			u.InputTokens += int64(event.Usage.InputTokens)
			u.OutputTokens += int64(event.Usage.OutputTokens)
		}
		if event.Model != "" {
			u.ModelUse[event.Model]++
		}
		if event.Tool != nil {
			u.ToolCalls[event.Tool.Name]++
		}
	}
}

// EstimatedCost returns the input, output, and total dollar estimates.
func (u *Usage) EstimatedCost() (input, output, total float64) {
	input = float64(u.InputTokens) * inputCostPer1K / 1000
	output = float64(u.OutputTokens) * outputCostPer1K / 1000
	return input, output, input + output
}

// NameCount pairs a tool or model name with its usage count.
type NameCount struct {
	Name  string
	Count int
}

// TopTools returns the most-used tools, highest count first, capped at n.
func (u *Usage) TopTools(n int) []NameCount {
	return topCounts(u.ToolCalls, n)
}

// Models returns every model with its message count, highest first.
func (u *Usage) Models() []NameCount {
	return topCounts(u.ModelUse, len(u.ModelUse))
}

func topCounts(counts map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
