package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/export"
	"github.com/sadopc/devlog/internal/store"
)

// settingsFields holds the form bindings, by pointer so huh edits the
// live values.
type settingsFields struct {
	displayName        string
	email              string
	emailNotifications bool
	weeklyReport       bool
	theme              string
	autoSave           bool
}

type settingsModel struct {
	client *api.Client
	store  *store.Store
	width  int
	height int

	form    *huh.Form
	fields  *settingsFields
	editing bool

	confirmingClear bool
	choosingExport  bool
	exporting       bool
}

type settingsSavedMsg struct{ err error }

type localDataClearedMsg struct{ err error }

type exportDoneMsg struct {
	path string
	err  error
}

func newSettingsModel(client *api.Client, st *store.Store) settingsModel {
	return settingsModel{client: client, store: st}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// refresh reloads the persisted settings into a fresh form.
func (s *settingsModel) refresh() tea.Cmd {
	settings, err := s.store.LoadSettings()
	if err != nil {
		settings = store.DefaultSettings()
	}
	s.fields = &settingsFields{
		displayName:        settings.DisplayName,
		email:              settings.Email,
		emailNotifications: settings.EmailNotifications,
		weeklyReport:       settings.WeeklyReport,
		theme:              settings.Theme,
		autoSave:           settings.AutoSave,
	}
	s.buildForm()
	s.editing = true
	return s.form.Init()
}

func (s *settingsModel) buildForm() {
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Display name").Value(&s.fields.displayName),
			huh.NewInput().Title("Email").Value(&s.fields.email),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&s.fields.theme),
			huh.NewConfirm().Title("Email notifications").Value(&s.fields.emailNotifications),
			huh.NewConfirm().Title("Weekly report").Value(&s.fields.weeklyReport),
			huh.NewConfirm().Title("Autosave drafts").Value(&s.fields.autoSave),
		),
	).WithShowHelp(true)
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: "Failed to save settings: " + msg.err.Error(), isError: true}
			}
		}
		return s, func() tea.Msg { return statusMsg{text: "Settings saved"} }

	case localDataClearedMsg:
		if msg.err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: "Failed to clear local data: " + msg.err.Error(), isError: true}
			}
		}
		cmd := s.refresh()
		return s, tea.Batch(
			cmd,
			func() tea.Msg { return statusMsg{text: "Local data cleared"} },
		)

	case exportDoneMsg:
		s.exporting = false
		if msg.err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: "Export failed: " + msg.err.Error(), isError: true}
			}
		}
		return s, func() tea.Msg { return statusMsg{text: "Exported to " + msg.path} }

	case tea.KeyMsg:
		if s.confirmingClear {
			switch msg.String() {
			case "y", "enter":
				s.confirmingClear = false
				st := s.store
				return s, func() tea.Msg {
					return localDataClearedMsg{err: st.ClearAll()}
				}
			case "n", "esc":
				s.confirmingClear = false
			}
			return s, nil
		}
		if s.choosingExport {
			switch msg.String() {
			case "j":
				s.choosingExport = false
				return s.startExport(export.FormatJSON)
			case "c":
				s.choosingExport = false
				return s.startExport(export.FormatCSV)
			case "esc":
				s.choosingExport = false
			}
			return s, nil
		}
		switch msg.String() {
		case "ctrl+x":
			s.choosingExport = true
			return s, nil
		case "ctrl+d":
			s.confirmingClear = true
			return s, nil
		case "esc":
			// Release the keyboard so tab switching works again.
			s.editing = false
			return s, nil
		}
	}

	if s.form == nil {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted && s.editing {
		s.editing = false
		settings := store.Settings{
			DisplayName:        s.fields.displayName,
			Email:              s.fields.email,
			EmailNotifications: s.fields.emailNotifications,
			WeeklyReport:       s.fields.weeklyReport,
			Theme:              s.fields.theme,
			AutoSave:           s.fields.autoSave,
		}
		st := s.store
		return s, func() tea.Msg {
			return settingsSavedMsg{err: st.SaveSettings(settings)}
		}
	}

	return s, cmd
}

func (s settingsModel) startExport(f export.Format) (settingsModel, tea.Cmd) {
	s.exporting = true
	client := s.client
	st := s.store
	return s, tea.Batch(
		func() tea.Msg { return statusMsg{text: "Exporting..."} },
		func() tea.Msg {
			path, err := export.Run(context.Background(), client, st, export.DefaultDir(), f)
			return exportDoneMsg{path: path, err: err}
		},
	)
}

func (s settingsModel) view() string {
	w := s.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	if s.form != nil {
		rows = append(rows, s.form.View())
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ctrl+x: export data  ctrl+d: clear local data"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if s.confirmingClear {
		confirm := lipgloss.JoinVertical(lipgloss.Left,
			warningStyle.Render("Clear all local data?"),
			mutedStyle.Render("Drafts and settings are removed. Backend data is untouched."),
			"",
			mutedStyle.Render("  y: clear  n: keep"),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, content, activePanelStyle.Width(w).Render(confirm))
	}

	if s.choosingExport {
		picker := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Export format"),
			"",
			fmt.Sprintf("  %s JSON backup (logs, projects, settings)", highlightStyle.Render("j:")),
			fmt.Sprintf("  %s CSV of logs", highlightStyle.Render("c:")),
			"",
			mutedStyle.Render("  esc: cancel"),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, content, activePanelStyle.Width(w).Render(picker))
	}

	return panelStyle.Width(w).Render(content)
}

// capturesInput: the settings form always owns typing while visible.
func (s settingsModel) capturesInput() bool {
	return s.editing && !s.confirmingClear && !s.choosingExport
}
