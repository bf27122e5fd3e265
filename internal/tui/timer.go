package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ymachida/pomogoal/internal/notify"
	"github.com/ymachida/pomogoal/internal/store"
)

type timerMode int

const (
	modeWork timerMode = iota
	modeShortBreak
	modeLongBreak
)

var modeDurations = map[timerMode]time.Duration{
	modeWork:       25 * time.Minute,
	modeShortBreak: 5 * time.Minute,
	modeLongBreak:  15 * time.Minute,
}

var modeLabels = map[timerMode]string{
	modeWork:       "WORK",
	modeShortBreak: "SHORT BREAK",
	modeLongBreak:  "LONG BREAK",
}

// timerModel is the work/break countdown. Only the daily counter and
// any goal/task credits persist; the countdown itself restarts from
// scratch on every launch.
type timerModel struct {
	store *store.Store
	sink  notify.Sink
	width int

	mode      timerMode
	remaining time.Duration
	running   bool

	todayCount int

	// Focus labels for display; crediting happens in the app.
	focusGoal string
	focusTask string
}

func newTimerModel(s *store.Store, sink notify.Sink) timerModel {
	return timerModel{
		store:      s,
		sink:       sink,
		mode:       modeWork,
		remaining:  modeDurations[modeWork],
		todayCount: s.TodayPomodoros(),
	}
}

func (t *timerModel) setSize(w, _ int) {
	t.width = w
}

func (t *timerModel) setFocusLabels(goal, task string) {
	t.focusGoal = goal
	t.focusTask = task
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !t.running {
			// Keep the display honest across midnight.
			t.todayCount = t.store.TodayPomodoros()
			return t, nil
		}
		t.remaining -= time.Second
		if t.remaining <= 0 {
			return t.completePhase()
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.StartPause):
			t.running = !t.running
			return t, nil
		case key.Matches(msg, keys.Reset):
			return t.switchMode(t.mode), nil
		case key.Matches(msg, keys.Work):
			return t.switchMode(modeWork), nil
		case key.Matches(msg, keys.ShortBreak):
			return t.switchMode(modeShortBreak), nil
		case key.Matches(msg, keys.LongBreak):
			return t.switchMode(modeLongBreak), nil
		}
	}
	return t, nil
}

// switchMode stops the countdown and loads the target mode at full
// duration. Reset is a switch to the current mode.
func (t timerModel) switchMode(m timerMode) timerModel {
	t.running = false
	t.mode = m
	t.remaining = modeDurations[m]
	return t
}

// completePhase handles the countdown hitting zero. A finished work
// interval bumps the daily counter and picks the break length from the
// running total: every 4th pomodoro earns the long break. A finished
// break always returns to work. Either way the next phase starts
// stopped.
func (t timerModel) completePhase() (timerModel, tea.Cmd) {
	if t.mode == modeWork {
		count := t.store.IncrementTodayPomodoros()
		t.todayCount = count
		t.sink.Notify("Pomodoro complete", fmt.Sprintf("%d today. Time for a break.", count))

		if count%4 == 0 {
			t = t.switchMode(modeLongBreak)
		} else {
			t = t.switchMode(modeShortBreak)
		}
		return t, func() tea.Msg {
			return pomodoroCompletedMsg{count: count}
		}
	}

	t.sink.Notify("Break over", "Back to work.")
	t = t.switchMode(modeWork)
	return t, func() tea.Msg {
		return statusMsg{text: "Break over"}
	}
}

func (t timerModel) view() string {
	w := t.width - 4

	title := titleStyle.Render("Pomodoro Timer")

	// Mode tabs
	var tabs []string
	for _, m := range []timerMode{modeWork, modeShortBreak, modeLongBreak} {
		if m == t.mode {
			tabs = append(tabs, activeTabStyle.Render(modeLabels[m]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(modeLabels[m]))
		}
	}
	modeRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	display := timerStyle.Width(w - 6).Render(formatCountdown(t.remaining))
	if t.running && t.mode != modeWork {
		display = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(t.remaining))
	}

	state := mutedStyle.Render("paused")
	if t.running {
		state = successStyle.Render("running")
	}

	today := fmt.Sprintf("Today: %d pomodoros (%d min)", t.todayCount, t.todayCount*store.WorkMinutes)

	var focusLines []string
	if t.focusGoal != "" {
		focusLines = append(focusLines, highlightStyle.Render("▶ goal: "+t.focusGoal))
	}
	if t.focusTask != "" {
		focusLines = append(focusLines, highlightStyle.Render("▶ task: "+t.focusTask))
	}
	if len(focusLines) == 0 {
		focusLines = append(focusLines, mutedStyle.Render("no focus: completions only count toward today"))
	}

	controls := mutedStyle.Render("s: start/pause  r: reset  w/b/l: mode")

	rows := []string{title, "", modeRow, "", display, state, "", today}
	rows = append(rows, focusLines...)
	rows = append(rows, "", controls)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	)
}
