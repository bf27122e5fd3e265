package store

import "time"

// DateLayout is the calendar-date format used everywhere a date is
// stored or compared (snapshot tags, history keys, counter scope).
const DateLayout = "2006-01-02"

// WorkMinutes is the length of one completed pomodoro in minutes.
const WorkMinutes = 25

// MaxHistoryDays bounds the day-record log; the oldest record is
// evicted first.
const MaxHistoryDays = 90

// Goal is a daily objective. Goals live only for the calendar day they
// were created on; at rollover they are folded into a DayRecord and
// discarded.
type Goal struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	Completed       bool   `json:"completed"`
	PomodorosTarget int    `json:"pomodorosTarget"`
	PomodorosDone   int    `json:"pomodorosDone"`
}

// Task is a standing to-do item, not scoped to any day. GoalID is an
// optional link to a current-day goal; it is reset to nil when that
// goal is deleted, so it never dangles.
type Task struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	GoalID             *string   `json:"goalId"`
	Completed          bool      `json:"completed"`
	EstimatedPomodoros *int      `json:"estimatedPomodoros"`
	CompletedPomodoros int       `json:"completedPomodoros"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DayRecord is the archived summary of one calendar day. Once a later
// day has begun the record is never modified again.
type DayRecord struct {
	Date           string `json:"date"`
	TotalPomodoros int    `json:"totalPomodoros"`
	TotalMinutes   int    `json:"totalMinutes"`
	GoalsCompleted int    `json:"goalsCompleted"`
	GoalsTotal     int    `json:"goalsTotal"`
}

// goalsSnapshot is the stored shape of the current day's goal list.
type goalsSnapshot struct {
	Date  string `json:"date"`
	Goals []Goal `json:"goals"`
}

// dayCount is the stored shape of the daily pomodoro counter.
type dayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
