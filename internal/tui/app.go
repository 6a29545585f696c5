package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	client *api.Client
	store  *store.Store
	log    *slog.Logger
	width  int
	height int

	activeView viewState
	showHelp   bool
	searchOpen bool

	dashboard  dashboardModel
	logs       logsModel
	projects   projectsModel
	statistics statisticsModel
	settings   settingsModel
	search     searchModel

	help  help.Model
	toast toastModel

	// Set when an update or render panicked. The app keeps running and
	// shows a recovery screen instead of crashing the terminal.
	crashed  bool
	crashMsg string
}

// Options carries the tunables main wires in from config.
type Options struct {
	PageSize         int
	AutosaveInterval time.Duration
}

func NewApp(client *api.Client, st *store.Store, log *slog.Logger, opts Options) App {
	h := help.New()
	h.ShowAll = false

	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.AutosaveInterval <= 0 {
		opts.AutosaveInterval = 30 * time.Second
	}

	return App{
		client:     client,
		store:      st,
		log:        log,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(client),
		logs:       newLogsModel(client, st, opts.PageSize, opts.AutosaveInterval),
		projects:   newProjectsModel(client),
		statistics: newStatisticsModel(client),
		settings:   newSettingsModel(client, st),
		search:     newSearchModel(client),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.loadData()
}

func (a App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("update panicked", "panic", r)
			a.crashed = true
			a.crashMsg = fmt.Sprint(r)
			model, cmd = a, nil
		}
	}()

	if a.crashed {
		return a.updateCrashed(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.logs.setSize(a.width, contentHeight)
		a.projects.setSize(a.width, contentHeight)
		a.statistics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.search.setSize(a.width, contentHeight)
		return a, nil

	case statusMsg:
		cmd := a.toast.show(msg.text, msg.isError)
		return a, cmd

	case toastExpireMsg:
		a.toast.expire(msg)
		return a, nil

	case searchClosedMsg:
		a.searchOpen = false
		return a, nil

	case openLogDetailMsg, openLogFormMsg:
		a.activeView = viewLogs
		var cmd tea.Cmd
		a.logs, cmd = a.logs.update(msg)
		return a, cmd

	case tea.KeyMsg:
		// The search overlay swallows every keystroke while open.
		if a.searchOpen {
			var cmd tea.Cmd
			a.search, cmd = a.search.update(msg)
			return a, cmd
		}

		// ctrl+c always quits, even inside forms.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Search and quick-new work from every view.
		switch {
		case key.Matches(msg, keys.Search):
			a.searchOpen = true
			cmd := a.search.open()
			return a, cmd
		case key.Matches(msg, keys.QuickNew):
			a.activeView = viewLogs
			cmd := a.logs.openForm(0)
			return a, cmd
		}

		// A child form owns the rest of the keyboard.
		if a.capturesInput() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.activeView = viewSettings
			a.settings.choosingExport = true
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			cmd := a.dashboard.loadData()
			return a, cmd
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewLogs
			cmd := a.logs.refresh()
			return a, cmd
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewProjects
			cmd := a.projects.refresh()
			return a, cmd
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewStatistics
			cmd := a.statistics.refresh()
			return a, cmd
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			cmd := a.settings.refresh()
			return a, cmd
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			cmd := a.refreshCurrentView()
			return a, cmd
		}

		return a.updateActiveView(msg)
	}

	// Search results keep flowing while the overlay is open.
	if a.searchOpen {
		switch msg.(type) {
		case searchDebounceMsg, searchResultsMsg:
			var cmd tea.Cmd
			a.search, cmd = a.search.update(msg)
			return a, cmd
		}
	}

	return a.updateAllViews(msg)
}

func (a App) updateCrashed(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "r":
			// Reload: drop all in-memory view state and start over.
			fresh := NewApp(a.client, a.store, a.log, Options{
				PageSize:         a.logs.list.pageSize,
				AutosaveInterval: a.logs.form.autosaveEvery,
			})
			fresh.width = a.width
			fresh.height = a.height
			contentHeight := fresh.height - 4
			fresh.dashboard.setSize(fresh.width, contentHeight)
			fresh.logs.setSize(fresh.width, contentHeight)
			fresh.projects.setSize(fresh.width, contentHeight)
			fresh.statistics.setSize(fresh.width, contentHeight)
			fresh.settings.setSize(fresh.width, contentHeight)
			fresh.search.setSize(fresh.width, contentHeight)
			return fresh, fresh.Init()
		case "q", "ctrl+c":
			return a, tea.Quit
		}
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewLogs:
		a.logs, cmd = a.logs.update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewStatistics:
		a.statistics, cmd = a.statistics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

// updateAllViews routes non-key messages (command results, ticks) to every
// view; each one ignores messages it does not own. Responses for a view
// the user has already left must still land in that view's model.
func (a App) updateAllViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.dashboard, cmd = a.dashboard.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.logs, cmd = a.logs.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.projects, cmd = a.projects.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.statistics, cmd = a.statistics.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.settings, cmd = a.settings.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a App) capturesInput() bool {
	switch a.activeView {
	case viewLogs:
		return a.logs.capturesInput()
	case viewProjects:
		return a.projects.formActive
	case viewSettings:
		return a.settings.capturesInput()
	}
	return false
}

func (a *App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewLogs:
		return a.logs.refresh()
	case viewProjects:
		return a.projects.refresh()
	case viewStatistics:
		return a.statistics.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("render panicked", "panic", r)
			out = a.renderCrashScreen(fmt.Sprint(r))
		}
	}()

	if a.crashed {
		return a.renderCrashScreen(a.crashMsg)
	}

	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewLogs:
		content = a.logs.view()
	case viewProjects:
		content = a.projects.view()
	case viewStatistics:
		content = a.statistics.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.searchOpen {
		content = lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, a.search.view())
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderCrashScreen(detail string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Something went wrong"),
		"",
		mutedStyle.Render(detail),
		"",
		mutedStyle.Render("  r: reload  q: quit"),
	)
	w := a.width - 4
	if w < 20 {
		w = 40
	}
	return panelStyle.Width(w).Render(content)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("devlog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	left := footerStyle.Render(helpView)
	right := a.toast.view()

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
