package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brittlewis12/claude-convo/internal/format"
	"github.com/brittlewis12/claude-convo/internal/search"
	"github.com/brittlewis12/claude-convo/internal/session"
	"github.com/brittlewis12/claude-convo/internal/stats"
	"github.com/brittlewis12/claude-convo/internal/store"
	"github.com/brittlewis12/claude-convo/internal/view"
)

var rootCmd = &cobra.Command{
	Use:   "claude-convo",
	Short: "Browse and search Claude Code conversation logs",
}

func init() {
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "claude-convo: %v\n", err)
		os.Exit(1)
	}
}

func newListCmd() *cobra.Command {
	var (
		formatFlag  string
		limit       int
		sessionsDir string
	)

	cmd := &cobra.Command{
		Use:   "list [project]",
		Short: "List projects, or sessions within a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			mode := strings.ToLower(formatFlag)

			if len(args) == 0 {
				projects, err := store.ListProjects(sessionsDir)
				if err != nil {
					return err
				}
				return format.WriteProjects(out, projects, mode)
			}

			result, err := store.ListSessions(sessionsDir, args[0])
			if err != nil {
				return err
			}
			errs := cmd.ErrOrStderr()
			for _, warn := range result.Warnings {
				fmt.Fprintf(errs, "warning: %v\n", warn)
			}
			sessions := result.Sessions
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}
			return format.WriteSessions(out, sessions, mode)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.IntVar(&limit, "limit", 0, "limit number of sessions returned (0 means no limit)")
	flags.StringVar(&sessionsDir, "sessions-dir", defaultSessionsDir(), "override the projects directory")

	return cmd
}

func newShowCmd() *cobra.Command {
	var (
		showThinking bool
		limit        int
		wrap         int
		forceColor   bool
		forceNoColor bool
		sessionsDir  string
	)

	cmd := &cobra.Command{
		Use:   "show <session-id-or-name>",
		Short: "Render a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}

			path, err := resolveSessionPath(args[0], sessionsDir)
			if err != nil {
				return err
			}
			events, err := session.ParseFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			outFile, _ := out.(*os.File)
			return view.RenderTranscript(events, view.Options{
				SessionID:    sessionIDFromPath(path),
				ShowThinking: showThinking,
				Limit:        limit,
				Wrap:         wrap,
				ForceColor:   forceColor,
				ForceNoColor: forceNoColor,
				Out:          out,
				OutFile:      outFile,
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&showThinking, "show-thinking", false, "expand assistant thinking blocks")
	flags.IntVar(&limit, "limit", 50, "show only the first N messages (0 means no limit)")
	flags.IntVar(&wrap, "wrap", 0, "wrap message body at the given column width")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")
	flags.StringVar(&sessionsDir, "sessions-dir", defaultSessionsDir(), "override the projects directory")

	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		project      string
		limit        int
		forceColor   bool
		forceNoColor bool
		sessionsDir  string
	)

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search session content with BM25 ranking",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if forceColor && forceNoColor {
				return errors.New("--color and --no-color cannot be used together")
			}
			query := strings.Join(args, " ")

			result, err := store.ListSessions(sessionsDir, project)
			if err != nil {
				return err
			}
			errs := cmd.ErrOrStderr()
			for _, warn := range result.Warnings {
				fmt.Fprintf(errs, "warning: %v\n", warn)
			}

			results := searchSessions(result.Sessions, query, errs)
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			out := cmd.OutOrStdout()
			view.RenderResults(out, query, results, view.Options{
				ForceColor:   forceColor,
				ForceNoColor: forceNoColor,
			})
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&project, "project", "", "restrict the search to one project")
	flags.IntVar(&limit, "limit", 10, "limit number of sessions shown (0 means no limit)")
	flags.BoolVar(&forceColor, "color", false, "force-enable ANSI colors even when stdout is not a TTY")
	flags.BoolVar(&forceNoColor, "no-color", false, "disable ANSI colors regardless of terminal detection")
	flags.StringVar(&sessionsDir, "sessions-dir", defaultSessionsDir(), "override the projects directory")

	return cmd
}

// searchSessions builds one corpus across every session so document
// frequencies reflect the whole search scope, then ranks per session.
func searchSessions(sessions []store.Session, query string, errs io.Writer) []view.SessionResult {
	type parsed struct {
		summary store.Session
		docs    []search.Document
	}

	var corpus []string
	var all []parsed
	for _, s := range sessions {
		events, err := session.ParseFile(s.Path)
		if err != nil {
			fmt.Fprintf(errs, "warning: %v\n", err)
			continue
		}
		docs := make([]search.Document, 0, len(events))
		for _, e := range events {
			text := e.SearchText()
			if text == "" {
				continue
			}
			docs = append(docs, search.Document{Text: text, Timestamp: e.Timestamp, Role: e.Role})
			corpus = append(corpus, text)
		}
		all = append(all, parsed{summary: s, docs: docs})
	}

	idx := search.BuildIndex(corpus)

	var results []view.SessionResult
	for _, p := range all {
		matches := search.Search(idx, query, p.docs)
		if len(matches) == 0 {
			continue
		}
		results = append(results, view.SessionResult{Session: p.summary, Matches: matches})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Matches[0].Score > results[j].Matches[0].Score
	})
	return results
}

func newStatsCmd() *cobra.Command {
	var (
		periodFlag  string
		sessionsDir string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := stats.ParsePeriod(periodFlag)
			if err != nil {
				return err
			}

			paths, err := store.SessionFiles(sessionsDir, "")
			if err != nil {
				return err
			}

			since := period.Start(time.Now())
			usage := stats.NewUsage()
			errs := cmd.ErrOrStderr()
			for _, path := range paths {
				events, err := session.ParseFile(path)
				if err != nil {
					fmt.Fprintf(errs, "warning: %v\n", err)
					continue
				}
				usage.AddSession(events, since)
			}

			return format.WriteUsage(cmd.OutOrStdout(), usage, period)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&periodFlag, "period", "week", "aggregation window: day, week, month, or all")
	flags.StringVar(&sessionsDir, "sessions-dir", defaultSessionsDir(), "override the projects directory")

	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		output          string
		includeThinking bool
		includeTools    bool
		sessionsDir     string
	)

	cmd := &cobra.Command{
		Use:   "export <session-id-or-name>",
		Short: "Export a session transcript to Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSessionPath(args[0], sessionsDir)
			if err != nil {
				return err
			}
			events, err := session.ParseFile(path)
			if err != nil {
				return err
			}

			opts := format.ExportOptions{
				SessionID:       sessionIDFromPath(path),
				IncludeThinking: includeThinking,
				IncludeTools:    includeTools,
			}

			if output == "" {
				return format.WriteMarkdown(cmd.OutOrStdout(), events, opts)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			if err := format.WriteMarkdown(f, events, opts); err != nil {
				f.Close() //nolint:errcheck
				return err
			}
			// Close errors surface buffered write failures; success must
			// not be reported until the file is safely on disk.
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "write to the given file instead of stdout")
	flags.BoolVar(&includeThinking, "include-thinking", false, "include assistant thinking blocks")
	flags.BoolVar(&includeTools, "include-tools", true, "include tool invocations")
	flags.StringVar(&sessionsDir, "sessions-dir", defaultSessionsDir(), "override the projects directory")

	return cmd
}

func resolveSessionPath(arg, root string) (string, error) {
	if arg == "" {
		return "", errors.New("session identifier is empty")
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return arg, nil
	}

	return store.FindSession(root, arg)
}

func sessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

func defaultSessionsDir() string {
	if dir := os.Getenv("CLAUDE_CONVO_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "projects")
}
