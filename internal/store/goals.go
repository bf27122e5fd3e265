package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ymachida/pomogoal/internal/logger"
)

// LoadGoals returns the goal list for the current day.
//
// If the stored snapshot belongs to an earlier day, that day is first
// folded into the history log (see archivePriorDay), the stale snapshot
// and counter are cleared, and an empty list is returned. Prior-day
// activity is therefore never dropped silently, no matter how long the
// app was closed.
func (s *Store) LoadGoals() []Goal {
	var snap goalsSnapshot
	if !s.getJSON(keyGoals, &snap) {
		return []Goal{}
	}

	today := s.clock.Today()
	if snap.Date == today {
		if snap.Goals == nil {
			return []Goal{}
		}
		return snap.Goals
	}

	s.archivePriorDay(snap)
	s.removeRaw(keyGoals)
	s.removeRaw(keyCounter)
	logger.Info("rolled over to new day", "from", snap.Date, "to", today)
	return []Goal{}
}

// SaveGoals persists goals as today's snapshot and refreshes today's
// history record so the stats view stays current before rollover.
func (s *Store) SaveGoals(goals []Goal) {
	if goals == nil {
		goals = []Goal{}
	}
	s.setJSON(keyGoals, goalsSnapshot{Date: s.clock.Today(), Goals: goals})
	s.RecordCurrentDay(goals)
}

// AddGoal appends a new goal with a target of one pomodoro and returns
// the updated list.
func (s *Store) AddGoal(text string) []Goal {
	goals := s.LoadGoals()
	goals = append(goals, Goal{
		ID:              uuid.NewString(),
		Text:            strings.TrimSpace(text),
		Completed:       false,
		PomodorosTarget: 1,
		PomodorosDone:   0,
	})
	s.SaveGoals(goals)
	return goals
}

// ToggleGoal flips the completed flag. Unknown ids are a no-op.
func (s *Store) ToggleGoal(id string) []Goal {
	goals := s.LoadGoals()
	for i := range goals {
		if goals[i].ID == id {
			goals[i].Completed = !goals[i].Completed
			break
		}
	}
	s.SaveGoals(goals)
	return goals
}

// RemoveGoal deletes the goal and nils out any task still pointing at
// it. Callers holding the goal as the timer focus must clear that
// focus themselves.
func (s *Store) RemoveGoal(id string) []Goal {
	goals := s.LoadGoals()
	kept := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.SaveGoals(kept)
	s.ClearGoalReferences(id)
	return kept
}

// AdjustTarget moves the pomodoro target by delta, never below one.
func (s *Store) AdjustTarget(id string, delta int) []Goal {
	goals := s.LoadGoals()
	for i := range goals {
		if goals[i].ID == id {
			goals[i].PomodorosTarget += delta
			if goals[i].PomodorosTarget < 1 {
				goals[i].PomodorosTarget = 1
			}
			break
		}
	}
	s.SaveGoals(goals)
	return goals
}

// IncrementGoalDone credits one completed pomodoro to the goal. The
// count may exceed the target; overshooting is allowed.
func (s *Store) IncrementGoalDone(id string) []Goal {
	goals := s.LoadGoals()
	for i := range goals {
		if goals[i].ID == id {
			goals[i].PomodorosDone++
			break
		}
	}
	s.SaveGoals(goals)
	return goals
}
