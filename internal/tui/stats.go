package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ymachida/pomogoal/internal/store"
)

const chartDays = 14

type statsModel struct {
	store  *store.Store
	width  int
	height int

	history    []store.DayRecord
	todayCount int

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return statsDataMsg{
			history:    s.store.History(),
			todayCount: s.store.TodayPomodoros(),
		}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.history = msg.history
		s.todayCount = msg.todayCount
		s.buildChart()
		return s, nil
	}
	return s, nil
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if s.height > 28 {
		chartHeight = 14
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	byDate := make(map[string]store.DayRecord, len(s.history))
	for _, r := range s.history {
		byDate[r.Date] = r
	}

	today := time.Now()
	start := today.AddDate(0, 0, 1-chartDays)

	var bars []barchart.BarData
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(store.DateLayout)
		label := d.Format("02")

		value := 0.0
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if r, ok := byDate[dateStr]; ok {
			value = float64(r.TotalPomodoros)
		}
		// The live counter runs ahead of history until the next
		// goal mutation re-records today.
		if dateStr == today.Format(store.DateLayout) && float64(s.todayCount) > value {
			value = float64(s.todayCount)
		}
		if value == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: dateStr, Value: value, Style: style}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

// trailing sums the last n archived days (today's in-progress record
// included once goal activity has written it).
func trailing(history []store.DayRecord, n int) (pomos, mins, goals int) {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	for _, r := range history {
		pomos += r.TotalPomodoros
		mins += r.TotalMinutes
		goals += r.GoalsCompleted
	}
	return pomos, mins, goals
}

func (s statsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("Statistics")

	todayLine := fmt.Sprintf("Today  %s  %s",
		accentStyle.Bold(true).Render(fmt.Sprintf("%d pomodoros", s.todayCount)),
		mutedStyle.Render(fmt.Sprintf("%d min focused", s.todayCount*store.WorkMinutes)),
	)

	if len(s.history) == 0 && s.todayCount == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			todayLine,
			"",
			mutedStyle.Render("No data yet. Complete a pomodoro to start your history."),
		)
		return panelStyle.Width(w).Render(content)
	}

	chartTitle := mutedStyle.Render(fmt.Sprintf("Last %d days", chartDays))
	chartView := s.chart.View()

	wp, wm, wg := trailing(s.history, 7)
	mp, mm, mg := trailing(s.history, 30)

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-14s %10s %10s %10s", "Period", "Pomodoros", "Minutes", "Goals")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 48)))
	rows = append(rows, fmt.Sprintf("  %-14s %10d %10d %10d", "Last 7 days", wp, wm, wg))
	rows = append(rows, fmt.Sprintf("  %-14s %10d %10d %10d", "Last 30 days", mp, mm, mg))
	table := strings.Join(rows, "\n")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", todayLine, "", chartTitle, chartView, "", table,
		),
	)
}
