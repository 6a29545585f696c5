package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
)

// projectFormState carries the editable fields, held by pointer so the
// huh bindings survive model copies.
type projectFormState struct {
	name        string
	description string
	status      string
	startDate   string
	endDate     string
	progress    string
}

func (fs *projectFormState) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(fs.name) == "" {
		errs["name"] = "Enter a project name."
	}
	if fs.startDate == "" {
		errs["startDate"] = "Enter a start date."
	}
	if fs.endDate != "" && fs.startDate != "" && fs.endDate < fs.startDate {
		errs["endDate"] = "End date must not be before the start date."
	}
	if p, err := strconv.Atoi(strings.TrimSpace(fs.progress)); err != nil || p < 0 || p > 100 {
		errs["progress"] = "Progress must be between 0 and 100."
	}
	return errs
}

func (fs *projectFormState) payload() api.ProjectPayload {
	progress, _ := strconv.Atoi(strings.TrimSpace(fs.progress))
	p := api.ProjectPayload{
		Name:      strings.TrimSpace(fs.name),
		Status:    fs.status,
		StartDate: fs.startDate,
		Progress:  progress,
	}
	p.Description = nullable(fs.description)
	p.EndDate = nullable(fs.endDate)
	return p
}

type projectsModel struct {
	client *api.Client
	width  int
	height int

	projects []api.Project
	cursor   int
	loading  bool
	loadErr  string

	formActive bool
	form       *huh.Form
	fs         *projectFormState
	formErrors map[string]string
	editingID  int64 // 0 = creating

	confirmingDelete bool
	deleteTarget     int64

	viewingStats bool
	stats        *api.ProjectStats
	statsErr     string
}

type projectsDataMsg struct {
	projects []api.Project
	err      error
}

type projectSavedMsg struct {
	created bool
	err     error
}

type projectDeletedMsg struct {
	id  int64
	err error
}

type projectStatsMsg struct {
	stats *api.ProjectStats
	err   error
}

func newProjectsModel(client *api.Client) projectsModel {
	return projectsModel{client: client}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *projectsModel) refresh() tea.Cmd {
	p.loading = true
	client := p.client
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		return projectsDataMsg{projects: projects, err: err}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsDataMsg:
		p.loading = false
		if msg.err != nil {
			p.loadErr = msg.err.Error()
			return p, nil
		}
		p.loadErr = ""
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return p, nil

	case projectSavedMsg:
		if msg.err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: "Failed to save project: " + msg.err.Error(), isError: true}
			}
		}
		text := "Project updated"
		if msg.created {
			text = "Project created"
		}
		cmd := p.refresh()
		return p, tea.Batch(
			cmd,
			func() tea.Msg { return statusMsg{text: text} },
		)

	case projectDeletedMsg:
		if msg.err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: "Delete failed: " + msg.err.Error(), isError: true}
			}
		}
		for i, proj := range p.projects {
			if proj.ID == msg.id {
				p.projects = append(p.projects[:i], p.projects[i+1:]...)
				break
			}
		}
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return p, func() tea.Msg { return statusMsg{text: "Project deleted"} }

	case projectStatsMsg:
		if msg.err != nil {
			p.statsErr = msg.err.Error()
			return p, nil
		}
		p.statsErr = ""
		p.stats = msg.stats
		return p, nil

	case tea.KeyMsg:
		if p.formActive && p.form != nil {
			return p.updateForm(msg)
		}
		if p.confirmingDelete {
			return p.updateDeleteConfirm(msg)
		}
		if p.viewingStats {
			if msg.String() == "esc" {
				p.viewingStats = false
				p.stats = nil
			}
			return p, nil
		}
		return p.updateList(msg)
	}

	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}
	return p, nil
}

func (p projectsModel) updateList(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.projects)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if p.cursor < len(p.projects) {
			p.viewingStats = true
			p.stats = nil
			id := p.projects[p.cursor].ID
			client := p.client
			return p, func() tea.Msg {
				stats, err := client.GetProjectStats(context.Background(), id)
				return projectStatsMsg{stats: stats, err: err}
			}
		}
	case key.Matches(msg, keys.New):
		return p.showForm(nil)
	case key.Matches(msg, keys.Edit):
		if p.cursor < len(p.projects) {
			proj := p.projects[p.cursor]
			return p.showForm(&proj)
		}
	case key.Matches(msg, keys.Delete):
		if p.cursor < len(p.projects) {
			p.confirmingDelete = true
			p.deleteTarget = p.projects[p.cursor].ID
		}
	case key.Matches(msg, keys.Refresh):
		cmd := p.refresh()
		return p, cmd
	}
	return p, nil
}

func (p projectsModel) updateDeleteConfirm(msg tea.KeyMsg) (projectsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		p.confirmingDelete = false
		id := p.deleteTarget
		client := p.client
		return p, func() tea.Msg {
			err := client.DeleteProject(context.Background(), id)
			return projectDeletedMsg{id: id, err: err}
		}
	case "n", "esc":
		p.confirmingDelete = false
	}
	return p, nil
}

func (p projectsModel) showForm(existing *api.Project) (projectsModel, tea.Cmd) {
	p.fs = &projectFormState{status: string(api.StatusActive), progress: "0"}
	p.editingID = 0
	p.formErrors = nil
	if existing != nil {
		p.editingID = existing.ID
		p.fs.name = existing.Name
		p.fs.description = existing.Description
		p.fs.status = string(existing.Status)
		p.fs.startDate = format.Date(existing.StartDate)
		if existing.EndDate != "" {
			p.fs.endDate = format.Date(existing.EndDate)
		}
		p.fs.progress = strconv.Itoa(existing.Progress)
	}
	p.buildForm()
	p.formActive = true
	return p, p.form.Init()
}

func (p *projectsModel) buildForm() {
	statusOptions := make([]huh.Option[string], len(api.ProjectStatuses))
	for i, s := range api.ProjectStatuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&p.fs.name),
			huh.NewText().Title("Description").Value(&p.fs.description),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(&p.fs.status),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(&p.fs.startDate),
			huh.NewInput().Title("End date (optional)").Value(&p.fs.endDate),
			huh.NewInput().Title("Progress (0-100)").Value(&p.fs.progress),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formErrors = p.fs.validate()
		if len(p.formErrors) > 0 {
			p.buildForm()
			return p, tea.Batch(
				p.form.Init(),
				func() tea.Msg { return statusMsg{text: "Check the highlighted fields", isError: true} },
			)
		}

		p.formActive = false
		payload := p.fs.payload()
		editingID := p.editingID
		client := p.client
		return p, func() tea.Msg {
			var err error
			if editingID == 0 {
				_, err = client.CreateProject(context.Background(), payload)
			} else {
				_, err = client.UpdateProject(context.Background(), editingID, payload)
			}
			return projectSavedMsg{created: editingID == 0, err: err}
		}
	}

	return p, cmd
}

func (p projectsModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		if p.editingID != 0 {
			title = titleStyle.Render("Edit Project")
		}
		rows := []string{title}
		for _, field := range []string{"name", "startDate", "endDate", "progress"} {
			if msg, ok := p.formErrors[field]; ok {
				rows = append(rows, fieldErrorStyle.Render("  ✗ "+msg))
			}
		}
		rows = append(rows, "", p.form.View())
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	if p.viewingStats {
		return p.renderStats(w)
	}
	return p.renderList(w)
}

func (p projectsModel) renderList(w int) string {
	title := titleStyle.Render("Projects")

	if p.loadErr != "" {
		content := lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Failed to load projects"),
			mutedStyle.Render(p.loadErr),
			"",
			mutedStyle.Render("Press r to retry"),
		)
		return panelStyle.Width(w).Render(content)
	}

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-11s %-18s %s", "", "Name", "Status", "Progress", "Logs"))
	rows = append(rows, header)

	for i, proj := range p.projects {
		dot := colorStyle(format.ProjectColor(proj.Name)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		bar := renderProgress(clamp(proj.Progress, 0, 100), 12)
		row := style.Render(fmt.Sprintf("%s%s %-24s %-11s", cursor, dot, format.Truncate(proj.Name, 24), proj.Status)) +
			fmt.Sprintf(" %s %3d%%  %d", bar, proj.Progress, proj.TotalLogs)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: stats"))

	content := strings.Join(rows, "\n")

	if p.confirmingDelete {
		confirm := lipgloss.JoinVertical(lipgloss.Left,
			warningStyle.Render("Delete this project?"),
			"",
			mutedStyle.Render("  y: delete  n: keep"),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, content, activePanelStyle.Width(w).Render(confirm))
	}

	return panelStyle.Width(w).Render(content)
}

func (p projectsModel) renderStats(w int) string {
	if p.statsErr != "" {
		content := lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Failed to load project stats"),
			mutedStyle.Render(p.statsErr),
			"",
			mutedStyle.Render("esc: back"),
		)
		return panelStyle.Width(w).Render(content)
	}
	if p.stats == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading project stats..."))
	}

	s := p.stats
	dot := colorStyle(format.ProjectColor(s.ProjectName)).Render("●")

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%s %s", dot, s.ProjectName)))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%s · %d%%", s.ProjectStatus, s.ProjectProgress)))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Total logs", highlightStyle.Render(fmt.Sprintf("%d", s.TotalLogs))))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Total time", highlightStyle.Render(format.WorkTime(s.TotalWorkMinutes))))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Avg per log", highlightStyle.Render(format.WorkTime(s.AvgWorkMinutes))))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Tech tags", highlightStyle.Render(fmt.Sprintf("%d", s.TechTagCount))))
	if s.FirstLogDate != "" {
		rows = append(rows, fmt.Sprintf("  %-18s %s", "First log", mutedStyle.Render(format.Date(s.FirstLogDate))))
	}
	if s.LastLogDate != "" {
		rows = append(rows, fmt.Sprintf("  %-18s %s", "Last log", mutedStyle.Render(format.Date(s.LastLogDate))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
