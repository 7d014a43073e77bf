package stats

import (
	"math"
	"testing"
	"time"

	"github.com/brittlewis12/claude-convo/internal/session"
)

func assistantEvent(ts time.Time, model, tool string, in, out int) session.Event {
	event := session.Event{Timestamp: ts, Role: "assistant", Model: model}
	if tool != "" {
		event.Tool = &session.ToolUse{Name: tool}
	}
	if in > 0 || out > 0 {
		event.Usage = &session.TokenUsage{InputTokens: in, OutputTokens: out}
	}
	return event
}

func TestParsePeriod(t *testing.T) {
	for _, value := range []string{"day", "week", "month", "all"} {
		if _, err := ParsePeriod(value); err != nil {
			t.Fatalf("%s should parse: %v", value, err)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Fatalf("invalid period should be rejected")
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := PeriodDay.Start(now); !got.Equal(now.AddDate(0, 0, -1)) {
		t.Fatalf("unexpected day start: %v", got)
	}
	if got := PeriodWeek.Start(now); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("unexpected week start: %v", got)
	}
	if got := PeriodAll.Start(now); !got.IsZero() {
		t.Fatalf("all-time window must start at zero, got %v", got)
	}
}

func TestAddSession_Totals(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) // a Monday
	events := []session.Event{
		{Timestamp: start, Role: "user", Content: "hello"},
		assistantEvent(start.Add(time.Minute), "claude-opus-4", "Bash", 100, 40),
		assistantEvent(start.Add(2*time.Minute), "claude-opus-4", "Bash", 50, 20),
		assistantEvent(start.Add(3*time.Minute), "claude-haiku-4", "Read", 10, 5),
		{Timestamp: start.Add(10 * time.Minute), Role: "system:info", Content: "done"},
	}

	usage := NewUsage()
	usage.AddSession(events, time.Time{})

	if usage.Sessions != 1 || usage.Messages != 5 {
		t.Fatalf("unexpected counts: sessions=%d messages=%d", usage.Sessions, usage.Messages)
	}
	if usage.TotalDuration != 10*time.Minute {
		t.Fatalf("unexpected duration: %v", usage.TotalDuration)
	}
	if usage.InputTokens != 160 || usage.OutputTokens != 65 {
		t.Fatalf("unexpected tokens: %d in, %d out", usage.InputTokens, usage.OutputTokens)
	}
	if usage.ToolCalls["Bash"] != 2 || usage.ToolCalls["Read"] != 1 {
		t.Fatalf("unexpected tool counts: %v", usage.ToolCalls)
	}
	if usage.ModelUse["claude-opus-4"] != 2 || usage.ModelUse["claude-haiku-4"] != 1 {
		t.Fatalf("unexpected model counts: %v", usage.ModelUse)
	}
	if usage.Weekday[time.Monday] != 1 {
		t.Fatalf("unexpected weekday counts: %v", usage.Weekday)
	}
}

func TestAddSession_SkipsSessionsBeforeWindow(t *testing.T) {
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	events := []session.Event{
		{Timestamp: start, Role: "user"},
		assistantEvent(start.Add(time.Minute), "claude-opus-4", "", 100, 40),
	}

	usage := NewUsage()
	usage.AddSession(events, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	if usage.Sessions != 0 || usage.Messages != 0 || usage.InputTokens != 0 {
		t.Fatalf("session before window must be skipped entirely: %+v", usage)
	}
}

func TestAddSession_EmptyTimeline(t *testing.T) {
	usage := NewUsage()
	usage.AddSession(nil, time.Time{})
	if usage.Sessions != 0 {
		t.Fatalf("empty timeline must not count as a session")
	}
}

func TestEstimatedCost(t *testing.T) {
	usage := NewUsage()
	usage.InputTokens = 2000
	usage.OutputTokens = 1000

	in, out, total := usage.EstimatedCost()
	if math.Abs(in-0.030) > 1e-9 {
		t.Fatalf("unexpected input cost: %v", in)
	}
	if math.Abs(out-0.075) > 1e-9 {
		t.Fatalf("unexpected output cost: %v", out)
	}
	if math.Abs(total-(in+out)) > 1e-9 {
		t.Fatalf("unexpected total: %v", total)
	}
}

func TestTopTools_OrderAndCap(t *testing.T) {
	usage := NewUsage()
	usage.ToolCalls["Bash"] = 5
	usage.ToolCalls["Read"] = 5
	usage.ToolCalls["Edit"] = 9
	usage.ToolCalls["Grep"] = 1

	top := usage.TopTools(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Name != "Edit" {
		t.Fatalf("highest count first, got %q", top[0].Name)
	}
	// Equal counts resolve alphabetically.
	if top[1].Name != "Bash" || top[2].Name != "Read" {
		t.Fatalf("tie-break must be alphabetical: %v", top)
	}
}
