// Package format holds the pure presentation helpers shared by the TUI:
// date/time formatting, duration rendering, tag parsing, date grouping
// and the name-hash project color.
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/devlog/internal/api"
)

// dateLayouts are tried in order when parsing backend date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders an ISO date/timestamp as YYYY-MM-DD, or "-" when empty
// or unparseable. This is also the grouping key for the log list.
func Date(s string) string {
	if s == "" {
		return "-"
	}
	t, ok := parseDate(s)
	if !ok {
		return "-"
	}
	return t.Format("2006-01-02")
}

func DateTime(s string) string {
	if s == "" {
		return "-"
	}
	t, ok := parseDate(s)
	if !ok {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// ClockTime extracts HH:MM from a time-of-day or timestamp string.
func ClockTime(s string) string {
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
	}
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// RelativeTime renders "3h ago" style timestamps, falling back to the
// plain date once more than 7 days have passed.
func RelativeTime(s string, now time.Time) string {
	t, ok := parseDate(s)
	if !ok {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d >= 7*24*time.Hour:
		return Date(s)
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours())/24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return "just now"
	}
}

// WorkTime renders minutes as "2h 30m" (or "45m", "3h").
func WorkTime(minutes int) string {
	if minutes <= 0 {
		return "0h"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// Hours converts minutes to hours with one decimal.
func Hours(minutes int) float64 {
	return float64(int(float64(minutes)/60*10+0.5)) / 10
}

func Percent(value, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(value)/float64(total)*100)
}

func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Palette for project colors, shared with the charts.
var Palette = []string{
	"#8B5CF6", // purple
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // orange
	"#EF4444", // red
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#84CC16", // lime
}

// ProjectColor picks a stable display color for a project name: sum of
// character codes modulo palette length.
func ProjectColor(name string) string {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return Palette[sum%len(Palette)]
}

// LogGroup is one calendar date's worth of logs.
type LogGroup struct {
	Date string
	Logs []api.DevLog
}

// GroupByDate buckets logs by calendar date and orders the groups
// newest-first. Within a group the input order is preserved (the backend
// already returns reverse-chronological pages).
func GroupByDate(logs []api.DevLog) []LogGroup {
	index := make(map[string]int)
	var groups []LogGroup
	for _, l := range logs {
		key := Date(l.LogDate)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LogGroup{Date: key})
		}
		groups[i].Logs = append(groups[i].Logs, l)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date > groups[b].Date
	})
	return groups
}
