package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
)

const searchDebounce = 300 * time.Millisecond

// searchModel is the ctrl+k overlay: type a keyword, pick a log.
// Queries fire only after the input has been quiet for searchDebounce,
// and stale responses are dropped by sequence number.
type searchModel struct {
	client *api.Client
	width  int
	height int

	input   textinput.Model
	results []api.DevLog
	cursor  int
	loading bool
	loadErr string

	debounceSeq int
	fetchSeq    int
	searched    bool
}

type searchDebounceMsg struct{ seq int }

type searchResultsMsg struct {
	seq  int
	logs []api.DevLog
	err  error
}

// searchClosedMsg dismisses the overlay.
type searchClosedMsg struct{}

func newSearchModel(client *api.Client) searchModel {
	input := textinput.New()
	input.Placeholder = "Search logs..."
	input.CharLimit = 100
	input.Width = 40
	return searchModel{client: client, input: input}
}

func (m *searchModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// open resets the overlay and focuses the input.
func (m *searchModel) open() tea.Cmd {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.loading = false
	m.loadErr = ""
	m.searched = false
	return m.input.Focus()
}

func (m searchModel) update(msg tea.Msg) (searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		return m.runSearch()

	case searchResultsMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.searched = true
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.results = msg.logs
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return searchClosedMsg{} }
		case "enter":
			if m.cursor < len(m.results) {
				id := m.results[m.cursor].ID
				return m, tea.Batch(
					func() tea.Msg { return searchClosedMsg{} },
					func() tea.Msg { return openLogDetailMsg{id: id} },
				)
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.debounceSeq++
			seq := m.debounceSeq
			return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchDebounceMsg{seq: seq}
			}))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m searchModel) runSearch() (searchModel, tea.Cmd) {
	keyword := strings.TrimSpace(m.input.Value())
	if keyword == "" {
		m.results = nil
		m.searched = false
		return m, nil
	}

	m.loading = true
	m.fetchSeq++
	seq := m.fetchSeq
	client := m.client
	return m, func() tea.Msg {
		logs, err := client.ListLogs(context.Background(), api.LogFilter{
			Page:    1,
			Size:    10,
			Keyword: keyword,
		})
		return searchResultsMsg{seq: seq, logs: logs, err: err}
	}
}

func (m searchModel) view() string {
	w := min(m.width-8, 64)
	if w < 30 {
		w = 30
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Search"))
	rows = append(rows, m.input.View())
	rows = append(rows, "")

	switch {
	case m.loading:
		rows = append(rows, mutedStyle.Render("Searching..."))
	case m.loadErr != "":
		rows = append(rows, errorStyle.Render("Search failed: "+m.loadErr))
	case len(m.results) == 0 && m.searched:
		rows = append(rows, mutedStyle.Render("No matching logs"))
	default:
		for i, l := range m.results {
			dot := colorStyle(format.ProjectColor(l.ProjectName)).Render("●")
			cursor := "  "
			style := normalItemStyle
			if i == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			rows = append(rows, fmt.Sprintf("%s%s %s %s",
				cursor, dot,
				style.Render(format.Truncate(l.Title, 34)),
				mutedStyle.Render(format.Date(l.LogDate)),
			))
		}
	}

	rows = append(rows, "", mutedStyle.Render("enter: open  esc: close"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
