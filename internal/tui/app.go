package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ymachida/pomogoal/internal/export"
	"github.com/ymachida/pomogoal/internal/notify"
	"github.com/ymachida/pomogoal/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timer timerModel
	goals goalsModel
	tasks tasksModel
	stats statsModel

	// The timer credits these on each completed work interval.
	focusedGoalID string
	focusedTaskID string

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, sink notify.Sink) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewTimer,
		timer:      newTimerModel(s, sink),
		goals:      newGoalsModel(s),
		tasks:      newTasksModel(s),
		stats:      newStatsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.goals.refresh(),
		a.tasks.refresh(),
		a.stats.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form, confirm), delegate first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewGoals
			return a, a.goals.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case pomodoroCompletedMsg:
		return a.creditFocus(msg.count)

	case goalFocusedMsg:
		a.focusedGoalID = msg.id
		a.refreshFocusLabels()
		return a, nil

	case taskFocusedMsg:
		a.focusedTaskID = msg.id
		a.refreshFocusLabels()
		return a, nil

	case goalRemovedMsg:
		if a.focusedGoalID == msg.id {
			a.focusedGoalID = ""
			a.refreshFocusLabels()
		}
		// Tasks linked to the goal lost their reference.
		return a, a.tasks.refresh()

	case taskRemovedMsg:
		if a.focusedTaskID == msg.id {
			a.focusedTaskID = ""
			a.refreshFocusLabels()
		}
		return a, nil

	// Data messages go to their owning view even when it is hidden,
	// so background refreshes are not dropped.
	case goalsDataMsg:
		var cmd tea.Cmd
		a.goals, cmd = a.goals.update(msg)
		return a, cmd

	case tasksDataMsg:
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.update(msg)
		return a, cmd

	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// creditFocus runs the completion side effects outside the timer: the
// focused goal and task each earn one pomodoro, then every view that
// shows counts is refreshed.
func (a App) creditFocus(count int) (tea.Model, tea.Cmd) {
	if a.focusedGoalID != "" {
		a.store.IncrementGoalDone(a.focusedGoalID)
	}
	if a.focusedTaskID != "" {
		a.store.IncrementTaskPomodoros(a.focusedTaskID)
	}
	a.status = fmt.Sprintf("Pomodoro complete: %d today", count)
	a.statusErr = false
	return a, tea.Batch(
		a.goals.refresh(),
		a.tasks.refresh(),
		a.stats.refresh(),
	)
}

func (a *App) refreshFocusLabels() {
	goalLabel := ""
	if a.focusedGoalID != "" {
		for _, g := range a.store.LoadGoals() {
			if g.ID == a.focusedGoalID {
				goalLabel = g.Text
				break
			}
		}
	}
	taskLabel := ""
	if a.focusedTaskID != "" {
		for _, t := range a.store.Tasks() {
			if t.ID == a.focusedTaskID {
				taskLabel = t.Title
				break
			}
		}
	}
	a.timer.setFocusLabels(goalLabel, taskLabel)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewGoals:
		return a.goals.formActive
	case viewTasks:
		return a.tasks.formActive || a.tasks.confirmingID != ""
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewGoals:
		return a.goals.refresh()
	case viewTasks:
		return a.tasks.refresh()
	case viewStats:
		return a.stats.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewGoals:
		content = a.goals.view()
	case viewTasks:
		content = a.tasks.view()
	case viewStats:
		content = a.stats.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
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

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pomogoal")
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

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Countdown indicator in footer when the timer runs off-screen.
	timerInfo := ""
	if a.timer.running && a.activeView != viewTimer {
		timerInfo = accentStyle.Render(" ● " + formatCountdown(a.timer.remaining))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		history := a.store.History()
		tasks := a.store.Tasks()

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(store.DateLayout)

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("pomogoal-export-%s.csv", dateStr))
			if err := export.ToCSV(history, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("pomogoal-export-%s.json", dateStr))
			if err := export.ToJSON(history, tasks, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
