package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LineStats reports how tolerant decoding went for one stream. Blank lines
// are not counted.
type LineStats struct {
	Total   int // lines seen
	Decoded int // lines matching a known record shape, summaries included
	Events  int // normalized events produced
}

// rawEntry mirrors the top-level JSONL object. json.RawMessage fields defer
// decoding of the parts whose shape depends on the entry type.
type rawEntry struct {
	Type       string          `json:"type"`
	UUID       string          `json:"uuid"`
	ParentUUID string          `json:"parentUuid"`
	SessionID  string          `json:"sessionId"`
	Timestamp  string          `json:"timestamp"`
	CWD        string          `json:"cwd"`
	GitBranch  string          `json:"gitBranch"`
	RequestID  string          `json:"requestId"`
	Message    json.RawMessage `json:"message"`
	Content    string          `json:"content"` // system entries only
	Level      string          `json:"level"`
	Summary    string          `json:"summary"`
	LeafUUID   string          `json:"leafUuid"`
}

type messagePayload struct {
	ID      string          `json:"id"`
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
	Usage   *struct {
		InputTokens              int    `json:"input_tokens"`
		OutputTokens             int    `json:"output_tokens"`
		CacheCreationInputTokens int    `json:"cache_creation_input_tokens"`
		CacheReadInputTokens     int    `json:"cache_read_input_tokens"`
		ServiceTier              string `json:"service_tier"`
	} `json:"usage"`
}

type userBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Source    json.RawMessage `json:"source"`
	ToolUseID string          `json:"tool_use_id"`
	Content   string          `json:"content"`
	IsError   bool            `json:"is_error"`
}

type assistantBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	Signature string          `json:"signature"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
}

// DecodeAndNormalize decodes one log line into a normalized Event. It is
// pure and never fails hard: malformed JSON, unknown entry types, missing
// required fields, and summary entries all yield ok=false so that one bad
// line cannot take down the rest of the timeline.
func DecodeAndNormalize(line []byte) (Event, bool) {
	event, outcome := decodeLine(line)
	return event, outcome == outcomeEvent
}

type decodeOutcome int

const (
	outcomeBad decodeOutcome = iota
	outcomeSummary
	outcomeEvent
)

func decodeLine(line []byte) (Event, decodeOutcome) {
	var entry rawEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return Event{}, outcomeBad
	}

	switch EntryType(entry.Type) {
	case EntryTypeSummary:
		// Consumed and discarded: summaries never become timeline events.
		return Event{}, outcomeSummary
	case EntryTypeUser, EntryTypeAssistant, EntryTypeSystem:
	default:
		return Event{}, outcomeBad
	}

	if entry.UUID == "" || entry.SessionID == "" {
		return Event{}, outcomeBad
	}
	ts, err := parseTimestamp(entry.Timestamp)
	if err != nil {
		return Event{}, outcomeBad
	}

	event := Event{
		Timestamp:  ts,
		UUID:       entry.UUID,
		ParentUUID: entry.ParentUUID,
		SessionID:  entry.SessionID,
		CWD:        entry.CWD,
		GitBranch:  entry.GitBranch,
		RequestID:  entry.RequestID,
	}

	switch EntryType(entry.Type) {
	case EntryTypeUser:
		if !normalizeUser(&event, entry.Message) {
			return Event{}, outcomeBad
		}
	case EntryTypeAssistant:
		if !normalizeAssistant(&event, entry.Message) {
			return Event{}, outcomeBad
		}
	case EntryTypeSystem:
		level := entry.Level
		if level == "" {
			level = "info"
		}
		event.Role = "system:" + level
		event.Content = entry.Content
	}

	return event, outcomeEvent
}

func normalizeUser(event *Event, message json.RawMessage) bool {
	if len(message) == 0 {
		return false
	}
	var msg messagePayload
	if err := json.Unmarshal(message, &msg); err != nil {
		return false
	}
	if len(msg.Content) == 0 {
		return false
	}

	// The content field is ambiguous between a plain string and a list of
	// typed blocks. The trial order is a fixed contract: string first, then
	// block list.
	var asString string
	if err := json.Unmarshal(msg.Content, &asString); err == nil {
		event.Role = "user"
		event.Content = asString
		return true
	}

	var blocks []userBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return false
	}
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		switch block.Type {
		case "text":
			parts = append(parts, block.Text)
		case "tool_result":
			parts = append(parts, block.Content)
		case "image":
			// Images contribute nothing to text content.
		default:
			return false
		}
	}
	event.Role = "user"
	event.Content = strings.Join(parts, "\n")
	return true
}

func normalizeAssistant(event *Event, message json.RawMessage) bool {
	if len(message) == 0 {
		return false
	}
	var msg messagePayload
	if err := json.Unmarshal(message, &msg); err != nil {
		return false
	}

	var blocks []assistantBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return false
	}

	// Explicit fold over the block list: text concatenates, the first
	// thinking block is retained, the last tool_use block wins.
	var texts []string
	for _, block := range blocks {
		switch block.Type {
		case "text":
			texts = append(texts, block.Text)
		case "thinking":
			if event.Thinking == "" {
				event.Thinking = block.Thinking
			}
		case "tool_use":
			event.Tool = &ToolUse{Name: block.Name, ID: block.ID, Input: block.Input}
		default:
			return false
		}
	}

	event.Role = "assistant"
	event.Content = strings.Join(texts, "\n")
	event.Model = msg.Model
	if msg.Usage != nil {
		event.Usage = &TokenUsage{
			InputTokens:              msg.Usage.InputTokens,
			OutputTokens:             msg.Usage.OutputTokens,
			CacheCreationInputTokens: msg.Usage.CacheCreationInputTokens,
			CacheReadInputTokens:     msg.Usage.CacheReadInputTokens,
			ServiceTier:              msg.Usage.ServiceTier,
		}
	}
	return true
}

// Parse reads JSONL from r and returns the normalized timeline in file
// line order. Blank lines are skipped and malformed or oversized lines
// dropped one at a time; the returned LineStats let callers audit how
// tolerant the pass was.
// The only error returned is a read failure.
func Parse(r io.Reader) ([]Event, LineStats, error) {
	var (
		events []Event
		stats  LineStats
	)

	reader := bufio.NewReader(r)
	for {
		line, tooLong, readErr := readLine(reader)
		if tooLong {
			// An oversized entry is undecodable like any other bad line;
			// it is counted and dropped without aborting the file.
			stats.Total++
		} else if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			stats.Total++

			event, outcome := decodeLine(trimmed)
			switch outcome {
			case outcomeEvent:
				stats.Decoded++
				stats.Events++
				events = append(events, event)
			case outcomeSummary:
				stats.Decoded++
			case outcomeBad:
				// Skip silently; a malformed entry must never prevent the
				// remaining entries from being surfaced.
			}
		}

		if readErr == io.EOF {
			return events, stats, nil
		}
		if readErr != nil {
			return events, stats, fmt.Errorf("read session: %w", readErr)
		}
	}
}

// ParseFile parses the session log at path. It fails only when the file
// cannot be opened or read, never because of its contents.
func ParseFile(path string) ([]Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	events, _, err := Parse(file)
	return events, err
}

// maxLineBytes caps how much of one line is buffered. Tool results can be
// large, so the limit is generous; anything past it is dropped whole.
const maxLineBytes = 8 * 1024 * 1024

// readLine returns the next line from r without its trailing newline. When
// a line grows past maxLineBytes its remainder is discarded and tooLong is
// set so the caller can count it and keep reading the lines after it.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, readErr := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineBytes {
				line = nil
				tooLong = true
			}
		}
		switch readErr {
		case nil:
			return bytes.TrimSuffix(line, []byte("\n")), tooLong, nil
		case bufio.ErrBufferFull:
			continue
		default:
			return line, tooLong, readErr
		}
	}
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
