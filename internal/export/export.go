// Package export writes local snapshots of backend data, for backups or
// spreadsheet work. Everything is fetched fresh from the API at export time.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
	"github.com/sadopc/devlog/internal/store"
)

// Format selects the output file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// backup is the JSON export envelope.
type backup struct {
	ExportedAt string        `json:"exportedAt"`
	Logs       []api.DevLog  `json:"logs"`
	Projects   []api.Project `json:"projects"`
	Settings   interface{}   `json:"settings"`
}

// fetchAllLogs pages through the log list until the backend runs dry.
func fetchAllLogs(ctx context.Context, client *api.Client) ([]api.DevLog, error) {
	const pageSize = 100
	var all []api.DevLog
	for page := 1; ; page++ {
		logs, err := client.ListLogs(ctx, api.LogFilter{Page: page, Size: pageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, logs...)
		if len(logs) < pageSize {
			return all, nil
		}
	}
}

// Run exports all logs (and, for JSON, projects and local settings) to a
// timestamped file in dir. It returns the written path.
func Run(ctx context.Context, client *api.Client, st *store.Store, dir string, f Format) (string, error) {
	logs, err := fetchAllLogs(ctx, client)
	if err != nil {
		return "", fmt.Errorf("fetching logs: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	stamp := time.Now().Format("2006-01-02_150405")
	path := filepath.Join(dir, fmt.Sprintf("devlog_export_%s.%s", stamp, f))

	switch f {
	case FormatCSV:
		err = writeCSV(path, logs)
	default:
		err = writeJSON(ctx, client, st, path, logs)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(ctx context.Context, client *api.Client, st *store.Store, path string, logs []api.DevLog) error {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}
	settings, err := st.LoadSettings()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	b := backup{
		ExportedAt: time.Now().Format(time.RFC3339),
		Logs:       logs,
		Projects:   projects,
		Settings:   settings,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func writeCSV(path string, logs []api.DevLog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"date", "project", "title", "start", "end", "minutes", "mood", "tags", "description"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	for _, l := range logs {
		var tags []string
		for _, t := range l.TechTags {
			tags = append(tags, t.Name)
		}
		row := []string{
			format.Date(l.LogDate),
			l.ProjectName,
			l.Title,
			format.ClockTime(l.StartTime),
			format.ClockTime(l.EndTime),
			strconv.Itoa(l.WorkMinutes),
			string(l.Mood),
			strings.Join(tags, ";"),
			l.Description,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// DefaultDir is where exports land unless configured otherwise.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "exports"
	}
	return filepath.Join(home, "devlog-exports")
}
