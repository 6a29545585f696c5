package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/devlog/internal/api"
	"github.com/sadopc/devlog/internal/format"
)

type dashboardModel struct {
	client *api.Client
	width  int
	height int

	weekly     *api.WeeklyStats
	recentLogs []api.DevLog
	loading    bool
	loadErr    string

	chart barchart.Model
}

type dashboardDataMsg struct {
	weekly *api.WeeklyStats
	recent []api.DevLog
	err    error
}

func newDashboardModel(client *api.Client) dashboardModel {
	return dashboardModel{
		client: client,
		chart:  barchart.New(60, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *dashboardModel) loadData() tea.Cmd {
	d.loading = true
	client := d.client
	return func() tea.Msg {
		weekly, err := client.CurrentWeekStats(context.Background())
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		// Recent logs are decorative; ignore their failure.
		recent, _ := client.ListLogs(context.Background(), api.LogFilter{Page: 1, Size: 5})
		return dashboardDataMsg{weekly: weekly, recent: recent}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.loading = false
		if msg.err != nil {
			d.loadErr = msg.err.Error()
			return d, nil
		}
		d.loadErr = ""
		d.weekly = msg.weekly
		d.recentLogs = msg.recent
		d.buildChart()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Refresh):
			cmd := d.loadData()
			return d, cmd
		}
	}
	return d, nil
}

// goalRate is the share of weekdays with at least one log, against a
// five-day target. The progress display caps at 100.
func (d dashboardModel) goalRate() int {
	if d.weekly == nil {
		return 0
	}
	workDays := 0
	for _, day := range d.weekly.DailyCounts {
		if day.Count > 0 {
			workDays++
		}
	}
	return int(float64(workDays)/5*100 + 0.5)
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	d.chart = barchart.New(chartWidth, 10)

	if d.weekly == nil || len(d.weekly.DailyCounts) == 0 {
		return
	}

	var bars []barchart.BarData
	for _, day := range d.weekly.DailyCounts {
		label := day.Date
		if len(label) >= 10 {
			label = label[5:10] // MM-DD
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "hours",
				Value: format.Hours(day.WorkMinutes),
				Style: colorStyle(format.Palette[0]),
			}},
		})
	}
	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if d.loadErr != "" {
		content := lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Failed to load dashboard"),
			mutedStyle.Render(d.loadErr),
			"",
			mutedStyle.Render("Press r to retry"),
		)
		return panelStyle.Width(w).Render(content)
	}

	if d.loading && d.weekly == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading dashboard..."))
	}

	cards := d.renderStatCards(w)
	chartPanel := d.renderChartPanel(w)
	recent := d.renderRecentPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, cards, chartPanel, recent)
}

func (d dashboardModel) renderStatCards(w int) string {
	var totalMinutes, totalLogs, activeProjects int
	if d.weekly != nil {
		totalMinutes = d.weekly.TotalWorkMinutes
		totalLogs = d.weekly.TotalLogs
		activeProjects = d.weekly.ActiveProjects
	}

	rate := d.goalRate()
	cardWidth := max(14, (w-8)/4)

	card := func(label, value string, progress int) string {
		bar := renderProgress(clamp(progress, 0, 100), cardWidth-4)
		content := lipgloss.JoinVertical(lipgloss.Left,
			subtitleStyle.Render(label),
			titleStyle.Render(value),
			bar,
		)
		return panelStyle.Width(cardWidth).Render(content)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("This week", format.WorkTime(totalMinutes), totalMinutes*100/2400),
		card("Logs", fmt.Sprintf("%d", totalLogs), totalLogs*10),
		card("Projects", fmt.Sprintf("%d", activeProjects), activeProjects*100/3),
		card("Goal", fmt.Sprintf("%d%%", rate), rate),
	)
	return cards
}

func renderProgress(pct, width int) string {
	if width < 4 {
		width = 4
	}
	filled := width * pct / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return highlightStyle.Render(bar)
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Hours per day")
	if d.weekly == nil || len(d.weekly.DailyCounts) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No activity this week"),
		)
		return panelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, d.chart.View()),
	)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Logs")
	if len(d.recentLogs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No logs yet. Press 2 then n to write one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, l := range d.recentLogs {
		dot := colorStyle(format.ProjectColor(l.ProjectName)).Render("●")
		row := fmt.Sprintf("  %s %-10s %-28s %s",
			dot,
			format.Date(l.LogDate),
			format.Truncate(l.Title, 28),
			mutedStyle.Render(l.ProjectName),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
