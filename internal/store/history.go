package store

import "sort"

// History returns the archived day records, ascending by date.
func (s *Store) History() []DayRecord {
	var history []DayRecord
	if !s.getJSON(keyHistory, &history) {
		return []DayRecord{}
	}
	if history == nil {
		return []DayRecord{}
	}
	return history
}

// RecordCurrentDay upserts today's record from the given goals and
// today's pomodoro counter. Unlike rollover archival this always
// writes, even when everything is zero, so the stats chart has a
// current-day entry from the moment the app is first used.
func (s *Store) RecordCurrentDay(goals []Goal) {
	s.upsertDayRecord(summarize(s.clock.Today(), goals, s.TodayPomodoros()))
}

// archivePriorDay folds a stale snapshot into history. A day with no
// goals and no completed pomodoros is skipped: nothing happened, so it
// earns no record.
func (s *Store) archivePriorDay(snap goalsSnapshot) {
	count := s.priorDayCount(snap.Date)
	if len(snap.Goals) == 0 && count == 0 {
		return
	}
	s.upsertDayRecord(summarize(snap.Date, snap.Goals, count))
}

// priorDayCount reads the stored counter for the day being archived.
// The counter only applies if it is still tagged with that date;
// anything else counts as zero.
func (s *Store) priorDayCount(date string) int {
	var c dayCount
	if !s.getJSON(keyCounter, &c) {
		return 0
	}
	if c.Date != date {
		return 0
	}
	return c.Count
}

// upsertDayRecord inserts or replaces the record for its date, keeps
// the log sorted ascending, and evicts the oldest entries past the
// retention bound. Re-saving identical data is a no-op, so repeated
// calls are safe.
func (s *Store) upsertDayRecord(rec DayRecord) {
	history := s.History()

	replaced := false
	for i := range history {
		if history[i].Date == rec.Date {
			history[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, rec)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})

	if n := len(history); n > MaxHistoryDays {
		history = history[n-MaxHistoryDays:]
	}

	s.setJSON(keyHistory, history)
}

func summarize(date string, goals []Goal, pomodoros int) DayRecord {
	completed := 0
	for _, g := range goals {
		if g.Completed {
			completed++
		}
	}
	return DayRecord{
		Date:           date,
		TotalPomodoros: pomodoros,
		TotalMinutes:   pomodoros * WorkMinutes,
		GoalsCompleted: completed,
		GoalsTotal:     len(goals),
	}
}
