package tui

import (
	"fmt"
	"time"

	"github.com/ymachida/pomogoal/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewGoals
	viewTasks
	viewStats
)

var viewNames = []string{"Timer", "Goals", "Tasks", "Stats"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type goalsDataMsg struct {
	goals []store.Goal
}

type tasksDataMsg struct {
	tasks []store.Task
	goals []store.Goal
}

type statsDataMsg struct {
	history    []store.DayRecord
	todayCount int
}

// pomodoroCompletedMsg fires when a work interval counts down to zero.
// count is the day's running total after this completion.
type pomodoroCompletedMsg struct {
	count int
}

// goalFocusedMsg and taskFocusedMsg toggle the timer's credit target.
// An empty id clears the focus.
type goalFocusedMsg struct {
	id string
}

type taskFocusedMsg struct {
	id string
}

// goalRemovedMsg lets the app clear a focus pointing at a deleted goal.
type goalRemovedMsg struct {
	id string
}

type taskRemovedMsg struct {
	id string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
