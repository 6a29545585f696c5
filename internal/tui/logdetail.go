package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
)

type logDetailModel struct {
	client *api.Client
	width  int
	height int

	id      int64
	log     *api.DevLog
	loading bool
	loadErr string

	confirmingDelete bool
}

type logDetailMsg struct {
	id  int64
	log *api.DevLog
	err error
}

// detailClosedMsg returns control to the log list.
type detailClosedMsg struct{}

func newLogDetailModel(client *api.Client) logDetailModel {
	return logDetailModel{client: client}
}

func (m *logDetailModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *logDetailModel) open(id int64) tea.Cmd {
	m.id = id
	m.log = nil
	m.loading = true
	m.loadErr = ""
	m.confirmingDelete = false

	client := m.client
	return func() tea.Msg {
		log, err := client.GetLog(context.Background(), id)
		return logDetailMsg{id: id, log: log, err: err}
	}
}

func (m logDetailModel) update(msg tea.Msg) (logDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logDetailMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.log = msg.log
		return m, nil

	case logDeleteResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Delete failed: " + msg.err.Error(), isError: true}
			}
		}
		return m, tea.Batch(
			func() tea.Msg { return statusMsg{text: "Log deleted"} },
			func() tea.Msg { return detailClosedMsg{} },
		)

	case tea.KeyMsg:
		if m.confirmingDelete {
			switch msg.String() {
			case "y", "enter":
				m.confirmingDelete = false
				id := m.id
				client := m.client
				return m, func() tea.Msg {
					err := client.DeleteLog(context.Background(), id)
					return logDeleteResultMsg{id: id, err: err}
				}
			case "n", "esc":
				m.confirmingDelete = false
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return detailClosedMsg{} }
		case "e":
			id := m.id
			return m, func() tea.Msg { return openLogFormMsg{id: id} }
		case "d":
			m.confirmingDelete = true
		case "r":
			if m.loadErr != "" {
				cmd := m.open(m.id)
				return m, cmd
			}
		}
	}
	return m, nil
}

func (m logDetailModel) view() string {
	w := m.width - 4

	if m.loading {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading log..."))
	}
	if m.loadErr != "" {
		content := lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Failed to load log"),
			mutedStyle.Render(m.loadErr),
			"",
			mutedStyle.Render("Press r to retry, esc to go back"),
		)
		return panelStyle.Width(w).Render(content)
	}
	if m.log == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("No log"))
	}

	l := m.log
	dot := colorStyle(format.ProjectColor(l.ProjectName)).Render("●")

	var rows []string
	rows = append(rows, titleStyle.Render(l.Title))
	rows = append(rows, fmt.Sprintf("%s %s  %s", dot, l.ProjectName, mutedStyle.Render(format.Date(l.LogDate))))

	meta := []string{}
	if l.StartTime != "" && l.EndTime != "" {
		meta = append(meta, fmt.Sprintf("%s – %s", format.ClockTime(l.StartTime), format.ClockTime(l.EndTime)))
	}
	if l.WorkMinutes > 0 {
		meta = append(meta, format.WorkTime(l.WorkMinutes))
	}
	if l.Mood != "" {
		meta = append(meta, string(l.Mood)+" "+moodGlyph(l.Mood))
	}
	if len(meta) > 0 {
		rows = append(rows, mutedStyle.Render(strings.Join(meta, "  ·  ")))
	}

	if len(l.TechTags) > 0 {
		var tags []string
		for _, t := range l.TechTags {
			tags = append(tags, colorStyle(t.Color).Render("#"+t.Name))
		}
		rows = append(rows, strings.Join(tags, " "))
	}

	section := func(title, body string) {
		if body == "" {
			return
		}
		rows = append(rows, "", highlightStyle.Render(title), body)
	}
	section("Description", l.Description)
	section("Achievements", l.Achievements)
	section("Challenges", l.Challenges)
	section("Learnings", l.Learnings)
	section("Code", l.CodeSnippets)

	rows = append(rows, "", mutedStyle.Render("  e: edit  d: delete  esc: back"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if m.confirmingDelete {
		confirm := lipgloss.JoinVertical(lipgloss.Left,
			warningStyle.Render("Delete this log?"),
			"",
			mutedStyle.Render("  y: delete  n: keep"),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, content, activePanelStyle.Width(w).Render(confirm))
	}

	return panelStyle.Width(w).Render(content)
}
