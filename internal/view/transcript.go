// Package view renders session transcripts and search results for the
// terminal.
package view

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/brittlewis12/claude-convo/internal/format"
	"github.com/brittlewis12/claude-convo/internal/session"
	"github.com/brittlewis12/claude-convo/internal/stats"
)

// Options defines the configurable parameters for rendering a transcript.
type Options struct {
	SessionID    string
	ShowThinking bool
	Limit        int // 0 means no limit
	Wrap         int // 0 means autodetect terminal width
	ForceColor   bool
	ForceNoColor bool
	Out          io.Writer
	OutFile      *os.File
}

// RenderTranscript writes a session header followed by up to Limit events.
func RenderTranscript(events []session.Event, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	useColor := resolveColorChoice(opts.ForceColor, opts.ForceNoColor, out)
	width := determineWidth(opts.OutFile, opts.Wrap)

	printSessionHeader(out, opts.SessionID, events, useColor)
	fmt.Fprintln(out)

	limit := len(events)
	if opts.Limit > 0 && opts.Limit < limit {
		limit = opts.Limit
	}

	for i := 0; i < limit; i++ {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printEvent(out, &events[i], opts.ShowThinking, width, useColor)
	}

	if len(events) > limit {
		fmt.Fprintln(out)
		fmt.Fprintln(out, colorize(useColor, ansiDim,
			fmt.Sprintf("... %d more messages (use --limit 0 to show all)", len(events)-limit)))
	}
	return nil
}

func printSessionHeader(out io.Writer, sessionID string, events []session.Event, useColor bool) {
	if len(events) == 0 {
		fmt.Fprintln(out, "No events found in session")
		return
	}

	usage := stats.NewUsage()
	usage.AddSession(events, time.Time{})
	_, _, cost := usage.EstimatedCost()

	first := events[0].Timestamp
	last := events[len(events)-1].Timestamp

	fmt.Fprintln(out, colorize(useColor, ansiHeader, "┌─ Session "+strings.Repeat("─", 48)+"┐"))
	writeHeaderLine(out, useColor, fmt.Sprintf("ID: %s", sessionID))
	writeHeaderLine(out, useColor, fmt.Sprintf("Started: %s", first.Local().Format("2006-01-02 15:04:05 MST")))
	writeHeaderLine(out, useColor, fmt.Sprintf("Duration: %s", format.FormatDuration(last.Sub(first))))
	writeHeaderLine(out, useColor, fmt.Sprintf("Messages: %d", len(events)))
	writeHeaderLine(out, useColor, fmt.Sprintf("Tokens: %s in → %s out",
		format.FormatNumber(usage.InputTokens), format.FormatNumber(usage.OutputTokens)))
	writeHeaderLine(out, useColor, fmt.Sprintf("Est. Cost: $%.2f", cost))
	fmt.Fprintln(out, colorize(useColor, ansiHeader, "└"+strings.Repeat("─", 58)+"┘"))
}

func writeHeaderLine(out io.Writer, useColor bool, text string) {
	const inner = 56
	pad := inner - runewidth.StringWidth(text)
	if pad < 0 {
		text = runewidth.Truncate(text, inner, "…")
		pad = inner - runewidth.StringWidth(text)
	}
	border := colorize(useColor, ansiHeader, "│")
	fmt.Fprintf(out, "%s %s%s %s\n", border, text, strings.Repeat(" ", pad), border)
}

func printEvent(out io.Writer, event *session.Event, showThinking bool, width int, useColor bool) {
	ts := event.Timestamp.Local().Format("15:04:05")
	label, color := roleBanner(event.Role)

	banner := strings.Repeat("═", max(width-len(ts)-len(label)-4, 10))
	fmt.Fprintf(out, "%s %s %s\n",
		colorize(useColor, ansiDim, "["+ts+"]"),
		colorize(useColor, color+ansiBold, label),
		colorize(useColor, color, banner))

	if event.Content != "" {
		for _, line := range wrapLines(strings.Split(event.Content, "\n"), width) {
			fmt.Fprintln(out, line)
		}
	}

	if event.Thinking != "" {
		fmt.Fprintln(out)
		if showThinking {
			fmt.Fprintln(out, colorize(useColor, ansiThinking, "[Thinking]"))
			fmt.Fprintln(out, colorize(useColor, ansiDim, event.Thinking))
		} else {
			fmt.Fprintln(out, colorize(useColor, ansiDim,
				fmt.Sprintf("[Thinking - %d chars] (use --show-thinking to expand)", len(event.Thinking))))
		}
	}

	if event.Tool != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s %s\n",
			colorize(useColor, ansiTool+ansiBold, "[TOOL]"),
			event.Tool.Name,
			colorize(useColor, ansiDim, "("+event.Tool.ID+")"))
		for _, line := range strings.Split(format.PrettyJSON(string(event.Tool.Input)), "\n") {
			fmt.Fprintf(out, "  %s\n", colorize(useColor, ansiDim, line))
		}
	}

	if event.Usage != nil {
		fmt.Fprintln(out)
		model := event.Model
		if model == "" {
			model = "unknown"
		}
		fmt.Fprintln(out, colorize(useColor, ansiDim,
			fmt.Sprintf("Tokens: %d → %d | Model: %s",
				event.Usage.InputTokens, event.Usage.OutputTokens, model)))
	}
}

func roleBanner(role string) (label, color string) {
	switch {
	case role == "user":
		return "USER", ansiUser
	case role == "assistant":
		return "ASSISTANT", ansiAssistant
	case strings.HasPrefix(role, "system:"):
		return "SYSTEM", ansiSystem
	default:
		return strings.ToUpper(role), ansiDim
	}
}

func wrapLines(lines []string, width int) []string {
	var out []string
	for _, line := range lines {
		out = append(out, wrapText(line, width)...)
	}
	return out
}

// wrapText breaks a line on display-width boundaries, rune by rune.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	text = strings.TrimRight(text, " ")
	if text == "" {
		return []string{""}
	}

	var out []string
	var current strings.Builder
	currentWidth := 0

	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > width && current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(r)
		currentWidth += rw
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

func determineWidth(out *os.File, wrap int) int {
	if wrap > 0 {
		return wrap
	}
	if out != nil {
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if colsStr := os.Getenv("COLUMNS"); colsStr != "" {
		if v, err := strconv.Atoi(colsStr); err == nil && v > 0 {
			return v
		}
	}
	return 80
}

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiDim       = "\x1b[2m"
	ansiHeader    = "\x1b[38;5;33m"
	ansiUser      = "\x1b[38;5;51m"
	ansiAssistant = "\x1b[38;5;48m"
	ansiSystem    = "\x1b[38;5;220m"
	ansiTool      = "\x1b[38;5;75m"
	ansiThinking  = "\x1b[38;5;201m"
	ansiMatch     = "\x1b[30;43m" // black on yellow
)

func colorize(enabled bool, code string, text string) string {
	if !enabled {
		return text
	}
	return code + text + ansiReset
}

func resolveColorChoice(force, forceNo bool, out io.Writer) bool {
	if force {
		return true
	}
	if forceNo {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
