package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
)

const keywordDebounce = 300 * time.Millisecond

// filter rows, top to bottom
const (
	filterFieldKeyword = iota
	filterFieldProject
	filterFieldStart
	filterFieldEnd
)

type logListModel struct {
	client   *api.Client
	pageSize int
	width    int
	height   int

	logs    []api.DevLog
	groups  []format.LogGroup
	cursor  int
	page    int
	hasMore bool
	loading bool
	loadErr string

	// fetchSeq tags every issued list fetch; responses carrying an older
	// seq are stale and dropped.
	fetchSeq int

	projects []api.Project

	filterOpen   bool
	filterField  int
	keywordInput textinput.Model
	startInput   textinput.Model
	endInput     textinput.Model
	projectIdx   int // 0 = all projects
	debounceSeq  int

	confirmingDelete bool
	deleteTarget     int64

	spin spinner.Model
}

type logsPageMsg struct {
	seq  int
	page int
	logs []api.DevLog
	err  error
}

type logListProjectsMsg struct {
	projects []api.Project
}

type keywordDebounceMsg struct {
	seq int
}

type logDeleteResultMsg struct {
	id  int64
	err error
}

func newLogListModel(client *api.Client, pageSize int) logListModel {
	kw := textinput.New()
	kw.Placeholder = "search..."
	kw.CharLimit = 100

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = 10

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle

	return logListModel{
		client:       client,
		pageSize:     pageSize,
		page:         1,
		hasMore:      true,
		keywordInput: kw,
		startInput:   start,
		endInput:     end,
		spin:         sp,
	}
}

func (m *logListModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// currentFilter builds the filter from the editor inputs. Empty fields
// stay zero-valued and are omitted from the request.
func (m logListModel) currentFilter() api.LogFilter {
	f := api.LogFilter{
		Keyword:   strings.TrimSpace(m.keywordInput.Value()),
		StartDate: strings.TrimSpace(m.startInput.Value()),
		EndDate:   strings.TrimSpace(m.endInput.Value()),
	}
	if m.projectIdx > 0 && m.projectIdx <= len(m.projects) {
		f.ProjectID = m.projects[m.projectIdx-1].ID
	}
	return f
}

func (m logListModel) filterActive() bool {
	f := m.currentFilter()
	return f.ProjectID != 0 || f.StartDate != "" || f.EndDate != "" || f.Keyword != ""
}

// refresh resets pagination and re-fetches from page one.
func (m *logListModel) refresh() tea.Cmd {
	m.page = 1
	m.logs = nil
	m.groups = nil
	m.cursor = 0
	m.hasMore = true
	m.loadErr = ""
	return tea.Batch(m.fetchPage(1), m.loadProjects(), m.spin.Tick)
}

func (m *logListModel) fetchPage(page int) tea.Cmd {
	m.loading = true
	m.fetchSeq++
	seq := m.fetchSeq

	f := m.currentFilter()
	f.Page = page
	f.Size = m.pageSize

	client := m.client
	return func() tea.Msg {
		logs, err := client.ListLogs(context.Background(), f)
		return logsPageMsg{seq: seq, page: page, logs: logs, err: err}
	}
}

func (m logListModel) loadProjects() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		if err != nil {
			return logListProjectsMsg{}
		}
		return logListProjectsMsg{projects: projects}
	}
}

// loadMore requests the next page. Safe to call repeatedly: it is a
// no-op while a fetch is in flight or when the last page was short.
func (m *logListModel) loadMore() tea.Cmd {
	if m.loading || !m.hasMore {
		return nil
	}
	m.page++
	return m.fetchPage(m.page)
}

func (m logListModel) update(msg tea.Msg) (logListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logsPageMsg:
		if msg.seq != m.fetchSeq {
			return m, nil // stale response from an earlier filter state
		}
		m.loading = false
		if msg.err != nil {
			if msg.page == 1 {
				m.loadErr = msg.err.Error()
				return m, nil
			}
			m.page-- // retryable via cursor movement
			return m, func() tea.Msg {
				return statusMsg{text: "Failed to load more logs", isError: true}
			}
		}
		m.loadErr = ""
		if msg.page == 1 {
			m.logs = msg.logs
			m.cursor = 0
		} else {
			m.logs = append(m.logs, msg.logs...)
		}
		m.hasMore = len(msg.logs) == m.pageSize
		m.groups = format.GroupByDate(m.logs)
		if m.cursor >= len(m.logs) {
			m.cursor = max(0, len(m.logs)-1)
		}
		return m, nil

	case logListProjectsMsg:
		m.projects = msg.projects
		if m.projectIdx > len(m.projects) {
			m.projectIdx = 0
		}
		return m, nil

	case keywordDebounceMsg:
		if msg.seq != m.debounceSeq {
			return m, nil // superseded by a later keystroke
		}
		cmd := m.refresh()
		return m, cmd

	case logDeleteResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Delete failed: " + msg.err.Error(), isError: true}
			}
		}
		m.removeLog(msg.id)
		return m, func() tea.Msg { return statusMsg{text: "Log deleted"} }

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.confirmingDelete {
			return m.updateDeleteConfirm(msg)
		}
		if m.filterOpen {
			return m.updateFilterEditor(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m logListModel) updateList(msg tea.KeyMsg) (logListModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.logs)-1 {
			m.cursor++
		}
		// Reaching the last loaded row asks for the next page.
		if m.cursor == len(m.logs)-1 {
			cmd := m.loadMore()
			return m, cmd
		}
	case key.Matches(msg, keys.Enter):
		if m.cursor < len(m.logs) {
			id := m.logs[m.cursor].ID
			return m, func() tea.Msg { return openLogDetailMsg{id: id} }
		}
	case key.Matches(msg, keys.New):
		return m, func() tea.Msg { return openLogFormMsg{} }
	case key.Matches(msg, keys.Edit):
		if m.cursor < len(m.logs) {
			id := m.logs[m.cursor].ID
			return m, func() tea.Msg { return openLogFormMsg{id: id} }
		}
	case key.Matches(msg, keys.Delete):
		if m.cursor < len(m.logs) {
			m.confirmingDelete = true
			m.deleteTarget = m.logs[m.cursor].ID
		}
	case key.Matches(msg, keys.Filter):
		m.filterOpen = true
		m.filterField = filterFieldKeyword
		cmd := m.keywordInput.Focus()
		return m, cmd
	case key.Matches(msg, keys.Refresh):
		cmd := m.refresh()
		return m, cmd
	}
	return m, nil
}

func (m logListModel) updateDeleteConfirm(msg tea.KeyMsg) (logListModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirmingDelete = false
		id := m.deleteTarget
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

func (m logListModel) updateFilterEditor(msg tea.KeyMsg) (logListModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterOpen = false
		m.blurInputs()
		return m, nil
	case "ctrl+r":
		// clear all filters
		m.keywordInput.SetValue("")
		m.startInput.SetValue("")
		m.endInput.SetValue("")
		m.projectIdx = 0
		cmd := m.refresh()
		return m, cmd
	case "tab", "down":
		m.filterField = (m.filterField + 1) % 4
		cmd := m.focusFilterField()
		return m, cmd
	case "shift+tab", "up":
		m.filterField = (m.filterField + 3) % 4
		cmd := m.focusFilterField()
		return m, cmd
	case "enter":
		m.filterOpen = false
		m.blurInputs()
		cmd := m.refresh()
		return m, cmd
	}

	if m.filterField == filterFieldProject {
		switch msg.String() {
		case "left":
			if m.projectIdx > 0 {
				m.projectIdx--
				cmd := m.refresh()
				return m, cmd
			}
		case "right":
			if m.projectIdx < len(m.projects) {
				m.projectIdx++
				cmd := m.refresh()
				return m, cmd
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.filterField {
	case filterFieldKeyword:
		before := m.keywordInput.Value()
		m.keywordInput, cmd = m.keywordInput.Update(msg)
		if m.keywordInput.Value() != before {
			// Coalesce rapid keystrokes into one request.
			m.debounceSeq++
			seq := m.debounceSeq
			debounce := tea.Tick(keywordDebounce, func(time.Time) tea.Msg {
				return keywordDebounceMsg{seq: seq}
			})
			return m, tea.Batch(cmd, debounce)
		}
	case filterFieldStart:
		m.startInput, cmd = m.startInput.Update(msg)
	case filterFieldEnd:
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

func (m *logListModel) focusFilterField() tea.Cmd {
	m.blurInputs()
	switch m.filterField {
	case filterFieldKeyword:
		return m.keywordInput.Focus()
	case filterFieldStart:
		return m.startInput.Focus()
	case filterFieldEnd:
		return m.endInput.Focus()
	}
	return nil
}

func (m *logListModel) blurInputs() {
	m.keywordInput.Blur()
	m.startInput.Blur()
	m.endInput.Blur()
}

// removeLog drops one entry by identity, keeping order and regrouping.
func (m *logListModel) removeLog(id int64) {
	for i, l := range m.logs {
		if l.ID == id {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			break
		}
	}
	m.groups = format.GroupByDate(m.logs)
	if m.cursor >= len(m.logs) {
		m.cursor = max(0, len(m.logs)-1)
	}
}

func (m logListModel) view() string {
	w := m.width - 4

	var sections []string
	header := titleStyle.Render("Work Logs")
	count := subtitleStyle.Render(fmt.Sprintf("  %d logs", len(m.logs)))
	if m.filterActive() {
		count += warningStyle.Render("  (filtered)")
	}
	sections = append(sections, header+count)

	if m.filterOpen {
		sections = append(sections, m.renderFilterEditor(w))
	}

	switch {
	case m.loadErr != "":
		sections = append(sections, m.renderLoadError(w))
	case m.loading && len(m.logs) == 0:
		sections = append(sections, panelStyle.Width(w).Render(m.spin.View()+" Loading logs..."))
	case len(m.logs) == 0:
		sections = append(sections, m.renderEmpty(w))
	default:
		sections = append(sections, m.renderGroups(w))
	}

	if m.confirmingDelete {
		sections = append(sections, m.renderDeleteConfirm(w))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m logListModel) renderFilterEditor(w int) string {
	projectName := "All projects"
	if m.projectIdx > 0 && m.projectIdx <= len(m.projects) {
		projectName = m.projects[m.projectIdx-1].Name
	}

	rows := []string{titleStyle.Render("Filters")}
	labels := []string{"Keyword", "Project", "From", "To"}
	values := []string{
		m.keywordInput.View(),
		"◂ " + projectName + " ▸",
		m.startInput.View(),
		m.endInput.View(),
	}
	for i := range labels {
		cursor := "  "
		style := normalItemStyle
		if i == m.filterField {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+fmt.Sprintf("%-8s ", labels[i]))+values[i])
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: apply  ctrl+r: clear  esc: close"))
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m logListModel) renderLoadError(w int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Failed to load logs"),
		mutedStyle.Render(m.loadErr),
		"",
		mutedStyle.Render("Press r to retry"),
	)
	return panelStyle.Width(w).Render(content)
}

func (m logListModel) renderEmpty(w int) string {
	msg := "No logs yet. Press n to write your first one."
	if m.filterActive() {
		msg = "No results for the current filters."
	}
	return panelStyle.Width(w).Render(mutedStyle.Render(msg))
}

func (m logListModel) renderGroups(w int) string {
	var rows []string
	idx := 0
	for _, g := range m.groups {
		rows = append(rows, highlightStyle.Render(g.Date)+mutedStyle.Render(fmt.Sprintf("  %d", len(g.Logs))))
		for _, l := range g.Logs {
			cursor := "  "
			style := normalItemStyle
			if idx == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			dot := colorStyle(format.ProjectColor(l.ProjectName)).Render("●")
			line := fmt.Sprintf("%s%s %-24s %s", cursor, dot, format.Truncate(l.Title, 24), mutedStyle.Render(l.ProjectName))
			if l.WorkMinutes > 0 {
				line += mutedStyle.Render("  " + format.WorkTime(l.WorkMinutes))
			}
			if l.Mood != "" {
				line += "  " + moodGlyph(l.Mood)
			}
			rows = append(rows, style.Render(line))
			idx++
		}
		rows = append(rows, "")
	}

	if m.loading {
		rows = append(rows, mutedStyle.Render("  "+m.spin.View()+" loading more..."))
	} else if !m.hasMore {
		rows = append(rows, mutedStyle.Render("  all logs loaded"))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  f: filter  enter: open"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m logListModel) renderDeleteConfirm(w int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		warningStyle.Render("Delete this log?"),
		"",
		mutedStyle.Render("  y: delete  n: keep"),
	)
	return activePanelStyle.Width(w).Render(content)
}

func moodGlyph(m api.Mood) string {
	switch m {
	case api.MoodGreat:
		return successStyle.Render("++")
	case api.MoodGood:
		return successStyle.Render("+")
	case api.MoodNeutral:
		return mutedStyle.Render("~")
	case api.MoodBad:
		return warningStyle.Render("-")
	case api.MoodTerrible:
		return errorStyle.Render("--")
	}
	return ""
}
