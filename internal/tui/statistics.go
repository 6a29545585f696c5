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

type statsTab int

const (
	statsTabWeekly statsTab = iota
	statsTabMonthly
	statsTabTechStack
)

var statsTabNames = []string{"Weekly", "Monthly", "Tech Stack"}

// statisticsModel shows server-computed aggregates. Each sub-tab loads
// lazily on first visit; r forces a reload of the current one.
type statisticsModel struct {
	client *api.Client
	width  int
	height int

	tab      statsTab
	previous bool // show last week/month instead of the current one

	weekly    *api.WeeklyStats
	monthly   *api.MonthlyStats
	techStack *api.TechStackStats

	loading  bool
	loadErr  string
	fetchSeq int

	chart barchart.Model
}

type statsDataMsg struct {
	seq       int
	weekly    *api.WeeklyStats
	monthly   *api.MonthlyStats
	techStack *api.TechStackStats
	err       error
}

func newStatisticsModel(client *api.Client) statisticsModel {
	return statisticsModel{
		client: client,
		chart:  barchart.New(60, 10),
	}
}

func (s *statisticsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *statisticsModel) refresh() tea.Cmd {
	s.loading = true
	s.loadErr = ""
	s.fetchSeq++
	seq := s.fetchSeq
	client := s.client
	tab := s.tab
	previous := s.previous

	return func() tea.Msg {
		ctx := context.Background()
		switch tab {
		case statsTabWeekly:
			var (
				weekly *api.WeeklyStats
				err    error
			)
			if previous {
				weekly, err = client.LastWeekStats(ctx)
			} else {
				weekly, err = client.CurrentWeekStats(ctx)
			}
			return statsDataMsg{seq: seq, weekly: weekly, err: err}
		case statsTabMonthly:
			var (
				monthly *api.MonthlyStats
				err     error
			)
			if previous {
				monthly, err = client.LastMonthStats(ctx)
			} else {
				monthly, err = client.CurrentMonthStats(ctx)
			}
			return statsDataMsg{seq: seq, monthly: monthly, err: err}
		default:
			techStack, err := client.TechStack(ctx)
			return statsDataMsg{seq: seq, techStack: techStack, err: err}
		}
	}
}

func (s statisticsModel) update(msg tea.Msg) (statisticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		if msg.seq != s.fetchSeq {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.loadErr = msg.err.Error()
			return s, nil
		}
		switch {
		case msg.weekly != nil:
			s.weekly = msg.weekly
			s.buildChart(msg.weekly.DailyCounts)
		case msg.monthly != nil:
			s.monthly = msg.monthly
			s.buildChart(msg.monthly.DailyCounts)
		case msg.techStack != nil:
			s.techStack = msg.techStack
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if s.tab > 0 {
				s.tab--
				cmd := s.refresh()
				return s, cmd
			}
		case key.Matches(msg, keys.Right):
			if s.tab < statsTabTechStack {
				s.tab++
				cmd := s.refresh()
				return s, cmd
			}
		case key.Matches(msg, keys.Refresh):
			cmd := s.refresh()
			return s, cmd
		case msg.String() == "p":
			if s.tab != statsTabTechStack {
				s.previous = !s.previous
				cmd := s.refresh()
				return s, cmd
			}
		}
	}
	return s, nil
}

func (s *statisticsModel) buildChart(days []api.DailyCount) {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	s.chart = barchart.New(chartWidth, 10)

	if len(days) == 0 {
		return
	}

	var bars []barchart.BarData
	for _, day := range days {
		label := day.Date
		if len(label) >= 10 {
			label = label[8:10] // day of month
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "hours",
				Value: format.Hours(day.WorkMinutes),
				Style: colorStyle(format.Palette[1]),
			}},
		})
	}
	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statisticsModel) view() string {
	w := s.width - 4

	tabs := make([]string, len(statsTabNames))
	for i, name := range statsTabNames {
		if statsTab(i) == s.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case s.loadErr != "":
		body = lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("Failed to load statistics"),
			mutedStyle.Render(s.loadErr),
			"",
			mutedStyle.Render("Press r to retry"),
		)
	case s.loading:
		body = mutedStyle.Render("Loading statistics...")
	default:
		switch s.tab {
		case statsTabWeekly:
			body = s.renderWeekly()
		case statsTabMonthly:
			body = s.renderMonthly()
		default:
			body = s.renderTechStack()
		}
	}

	hint := mutedStyle.Render("  ◂ ▸: switch tab  p: previous period  r: reload")
	return lipgloss.JoinVertical(lipgloss.Left,
		tabBar,
		panelStyle.Width(w).Render(body),
		hint,
	)
}

func (s statisticsModel) renderWeekly() string {
	if s.weekly == nil {
		return mutedStyle.Render("No data yet")
	}
	st := s.weekly

	period := "This week"
	if s.previous {
		period = "Last week"
	}

	var rows []string
	rows = append(rows, titleStyle.Render(period)+"  "+
		mutedStyle.Render(fmt.Sprintf("%s – %s", format.Date(st.StartDate), format.Date(st.EndDate))))
	rows = append(rows, "")
	rows = append(rows, s.summaryLine(st.TotalLogs, st.TotalWorkMinutes, st.AvgWorkMinutes, st.ActiveProjects))

	if len(st.DailyCounts) == 0 {
		rows = append(rows, "", mutedStyle.Render("No activity in this period"))
	} else {
		rows = append(rows, "", highlightStyle.Render("Hours per day"), s.chart.View())
	}

	rows = append(rows, s.renderProjectCounts(st.ProjectCounts)...)
	return strings.Join(rows, "\n")
}

func (s statisticsModel) renderMonthly() string {
	if s.monthly == nil {
		return mutedStyle.Render("No data yet")
	}
	st := s.monthly

	period := "This month"
	if s.previous {
		period = "Last month"
	}

	var rows []string
	rows = append(rows, titleStyle.Render(period)+"  "+
		mutedStyle.Render(fmt.Sprintf("%04d-%02d", st.Year, st.Month)))
	rows = append(rows, "")
	rows = append(rows, s.summaryLine(st.TotalLogs, st.TotalWorkMinutes, st.AvgWorkMinutes, st.ActiveProjects))
	rows = append(rows, fmt.Sprintf("  %-14s %s", "Work days", highlightStyle.Render(fmt.Sprintf("%d", st.WorkDays))))

	if len(st.WeeklyCounts) > 0 {
		rows = append(rows, "", highlightStyle.Render("By week"))
		for _, wk := range st.WeeklyCounts {
			bar := renderProgress(clamp(wk.WorkMinutes*100/2400, 0, 100), 16)
			rows = append(rows, fmt.Sprintf("  W%-3d %s %3d logs  %s",
				wk.WeekNumber, bar, wk.Count, format.WorkTime(wk.WorkMinutes)))
		}
	}

	if len(st.DailyCounts) == 0 {
		rows = append(rows, "", mutedStyle.Render("No activity in this period"))
	} else {
		rows = append(rows, "", highlightStyle.Render("Hours per day"), s.chart.View())
	}

	rows = append(rows, s.renderProjectCounts(st.ProjectCounts)...)
	return strings.Join(rows, "\n")
}

func (s statisticsModel) summaryLine(totalLogs, totalMinutes, avgMinutes, activeProjects int) string {
	return fmt.Sprintf("  %s logs  ·  %s total  ·  %s avg  ·  %s projects",
		highlightStyle.Render(fmt.Sprintf("%d", totalLogs)),
		highlightStyle.Render(format.WorkTime(totalMinutes)),
		highlightStyle.Render(format.WorkTime(avgMinutes)),
		highlightStyle.Render(fmt.Sprintf("%d", activeProjects)),
	)
}

func (s statisticsModel) renderProjectCounts(counts []api.ProjectCount) []string {
	if len(counts) == 0 {
		return nil
	}
	maxMinutes := 1
	for _, pc := range counts {
		if pc.WorkMinutes > maxMinutes {
			maxMinutes = pc.WorkMinutes
		}
	}
	rows := []string{"", highlightStyle.Render("By project")}
	for _, pc := range counts {
		dot := colorStyle(format.ProjectColor(pc.ProjectName)).Render("●")
		bar := renderProgress(pc.WorkMinutes*100/maxMinutes, 16)
		rows = append(rows, fmt.Sprintf("  %s %-22s %s %3d logs  %s",
			dot, format.Truncate(pc.ProjectName, 22), bar, pc.Count, format.WorkTime(pc.WorkMinutes)))
	}
	return rows
}

func (s statisticsModel) renderTechStack() string {
	if s.techStack == nil {
		return mutedStyle.Render("No data yet")
	}
	st := s.techStack

	var rows []string
	rows = append(rows, titleStyle.Render("Tech Stack"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d tags · %d total uses", st.TotalTags, st.TotalUsageCount)))

	if len(st.TagUsages) == 0 {
		rows = append(rows, "", mutedStyle.Render("No tagged logs yet"))
		return strings.Join(rows, "\n")
	}

	if len(st.CategoryCounts) > 0 {
		rows = append(rows, "", highlightStyle.Render("By category"))
		for _, cc := range st.CategoryCounts {
			bar := renderProgress(clamp(int(cc.Percentage+0.5), 0, 100), 16)
			rows = append(rows, fmt.Sprintf("  %-14s %s %.1f%%",
				cc.Category, bar, cc.Percentage))
		}
	}

	rows = append(rows, "", highlightStyle.Render("Most used"))
	limit := min(10, len(st.TagUsages))
	for _, tu := range st.TagUsages[:limit] {
		tag := colorStyle(tu.Color).Render("#" + tu.TagName)
		line := fmt.Sprintf("  %-28s %3d uses  %.1f%%", tag, tu.UsageCount, tu.Percentage)
		if tu.LastUsedDate != "" {
			line += mutedStyle.Render("  last " + format.Date(tu.LastUsedDate))
		}
		rows = append(rows, line)
	}

	return strings.Join(rows, "\n")
}
