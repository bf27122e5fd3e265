package store

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyTitle rejects task creation with a blank title. This is the
// one storage error meant for the user's eyes.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Tasks returns all tasks in insertion order. Display ordering is a
// separate concern; see SortTasksForDisplay.
func (s *Store) Tasks() []Task {
	var tasks []Task
	if !s.getJSON(keyTasks, &tasks) {
		return []Task{}
	}
	if tasks == nil {
		return []Task{}
	}
	return tasks
}

func (s *Store) saveTasks(tasks []Task) {
	if tasks == nil {
		tasks = []Task{}
	}
	s.setJSON(keyTasks, tasks)
}

// AddTask creates a task. goalID and estimate are optional; estimate,
// when present, has already been validated to be at least one by the
// input layer.
func (s *Store) AddTask(title string, goalID *string, estimate *int) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	now := s.clock.Now()
	task := Task{
		ID:                 uuid.NewString(),
		Title:              title,
		GoalID:             goalID,
		Completed:          false,
		EstimatedPomodoros: estimate,
		CompletedPomodoros: 0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	s.saveTasks(append(s.Tasks(), task))
	return task, nil
}

// ToggleTask flips the completed flag and refreshes UpdatedAt.
func (s *Store) ToggleTask(id string) []Task {
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			tasks[i].UpdatedAt = s.clock.Now()
			break
		}
	}
	s.saveTasks(tasks)
	return tasks
}

// RemoveTask deletes the task outright. Goals are untouched.
func (s *Store) RemoveTask(id string) []Task {
	tasks := s.Tasks()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.saveTasks(kept)
	return kept
}

// IncrementTaskPomodoros credits one completed pomodoro to the task.
// No ceiling against the estimate.
func (s *Store) IncrementTaskPomodoros(id string) []Task {
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].CompletedPomodoros++
			tasks[i].UpdatedAt = s.clock.Now()
			break
		}
	}
	s.saveTasks(tasks)
	return tasks
}

// ClearGoalReferences nils the goal link on every task pointing at
// goalID. Run at every goal-deletion site; it is what keeps a task
// from referencing a goal that no longer exists.
func (s *Store) ClearGoalReferences(goalID string) []Task {
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].GoalID != nil && *tasks[i].GoalID == goalID {
			tasks[i].GoalID = nil
		}
	}
	s.saveTasks(tasks)
	return tasks
}

// SortTasksForDisplay orders a copy of tasks for the list view:
// incomplete before complete, oldest first within each group.
func SortTasksForDisplay(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Completed != sorted[j].Completed {
			return !sorted[i].Completed
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}
