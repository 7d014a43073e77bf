// Package store enumerates Claude Code project directories and session
// files and resolves session identifiers to file paths.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/brittlewis12/claude-convo/internal/names"
	"github.com/brittlewis12/claude-convo/internal/session"
)

// ErrSessionNotFound is returned when no session matches an id or name.
var ErrSessionNotFound = errors.New("session not found")

// previewWidth bounds the display width of the first-user-message preview.
const previewWidth = 60

// Project summarizes one project directory under the sessions root.
type Project struct {
	Name         string
	SessionCount int
	TotalSize    int64
	LastModified time.Time
}

// Session summarizes one JSONL session file for listing.
type Session struct {
	ID           string
	Name         string // memorable name derived from the id
	Path         string
	Project      string
	StartedAt    time.Time
	MessageCount int
	Size         int64
	Preview      string
}

// ListResult carries session summaries plus non-fatal per-file warnings.
type ListResult struct {
	Sessions []Session
	Warnings []error
}

// ListProjects enumerates project directories under root, newest activity
// first.
func ListProjects(root string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project := Project{Name: entry.Name()}

		files, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".jsonl") {
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}
			project.SessionCount++
			project.TotalSize += info.Size()
			if info.ModTime().After(project.LastModified) {
				project.LastModified = info.ModTime()
			}
		}
		projects = append(projects, project)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].LastModified.After(projects[j].LastModified)
	})
	return projects, nil
}

// ListSessions enumerates sessions of one project, newest first. Files that
// cannot be read or contain no events are reported as warnings, not errors.
func ListSessions(root, project string) (ListResult, error) {
	files, err := SessionFiles(root, project)
	if err != nil {
		return ListResult{}, err
	}

	var result ListResult
	for _, path := range files {
		summary, err := summarize(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("summarize %s: %w", path, err))
			continue
		}
		if summary == nil {
			continue // no decodable events
		}
		result.Sessions = append(result.Sessions, *summary)
	}

	sort.Slice(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].StartedAt.After(result.Sessions[j].StartedAt)
	})
	return result, nil
}

// SessionFiles returns the JSONL session paths for one project, or for all
// projects when project is empty.
func SessionFiles(root, project string) ([]string, error) {
	var dirs []string
	if project != "" {
		dirs = []string{filepath.Join(root, project)}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read projects dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, filepath.Join(root, entry.Name()))
			}
		}
	}

	var paths []string
	for _, dir := range dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if project != "" {
				return nil, fmt.Errorf("read project dir: %w", err)
			}
			continue
		}
		for _, file := range files {
			if !file.IsDir() && strings.HasSuffix(file.Name(), ".jsonl") {
				paths = append(paths, filepath.Join(dir, file.Name()))
			}
		}
	}
	return paths, nil
}

// FindSession resolves a session id prefix or a memorable name to a file
// path. Id prefixes take precedence; names are matched only when no id
// matches.
func FindSession(root, idOrName string) (string, error) {
	if idOrName == "" {
		return "", errors.New("session identifier is empty")
	}

	paths, err := SessionFiles(root, "")
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if strings.HasPrefix(sessionID(path), idOrName) {
			return path, nil
		}
	}
	for _, path := range paths {
		if names.Generate(sessionID(path)) == idOrName {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSessionNotFound, idOrName)
}

func sessionID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func summarize(path string) (*Session, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	events, err := session.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	id := sessionID(path)
	return &Session{
		ID:           id,
		Name:         names.Generate(id),
		Path:         path,
		Project:      filepath.Base(filepath.Dir(path)),
		StartedAt:    events[0].Timestamp,
		MessageCount: len(events),
		Size:         info.Size(),
		Preview:      preview(events),
	}, nil
}

// preview returns the first non-empty user message, collapsed to one line
// and clipped to a fixed display width.
func preview(events []session.Event) string {
	for _, event := range events {
		if !event.IsUser() || event.Content == "" {
			continue
		}
		text := strings.Join(strings.Fields(event.Content), " ")
		return "\"" + runewidth.Truncate(text, previewWidth, "...") + "\""
	}
	return "(no preview available)"
}
