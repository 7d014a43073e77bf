// Package session decodes Claude Code JSONL conversation logs into a
// uniform event timeline.
package session

import (
	"encoding/json"
	"strings"
	"time"
)

// EntryType represents the top-level "type" field values in session JSONL logs.
type EntryType string

const (
	EntryTypeSummary   EntryType = "summary"
	EntryTypeUser      EntryType = "user"
	EntryTypeAssistant EntryType = "assistant"
	EntryTypeSystem    EntryType = "system"
)

// Event is the uniform record produced for every decodable non-summary
// entry. Summary entries never produce an Event. Events keep file line
// order; callers may re-sort by Timestamp.
type Event struct {
	Timestamp time.Time
	Role      string // "user", "assistant", or "system:<level>"
	Content   string
	Thinking  string
	Tool      *ToolUse
	Usage     *TokenUsage
	Model     string

	// Shared entry metadata.
	UUID       string
	ParentUUID string
	SessionID  string
	CWD        string
	GitBranch  string
	RequestID  string
}

// ToolUse describes the single tool invocation retained for an assistant
// event. When an entry carries several tool_use blocks the last one wins.
type ToolUse struct {
	Name  string
	ID    string
	Input json.RawMessage
}

// TokenUsage holds token accounting reported on assistant entries.
type TokenUsage struct {
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
	ServiceTier              string
}

// IsAssistant reports whether the event came from an assistant entry.
func (e *Event) IsAssistant() bool { return e.Role == "assistant" }

// IsUser reports whether the event came from a user entry.
func (e *Event) IsUser() bool { return e.Role == "user" }

// SearchText assembles the text indexed and scored for this event:
// content, thinking, and a tool-name marker when a tool was invoked.
func (e *Event) SearchText() string {
	var b strings.Builder
	b.WriteString(e.Content)
	if e.Thinking != "" {
		b.WriteString("\n")
		b.WriteString(e.Thinking)
	}
	if e.Tool != nil {
		b.WriteString("\n[Tool: ")
		b.WriteString(e.Tool.Name)
		b.WriteString("]")
	}
	return b.String()
}
