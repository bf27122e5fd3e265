package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ymachida/pomogoal/internal/store"
)

type jsonExport struct {
	ExportedAt string            `json:"exported_at"`
	Days       []store.DayRecord `json:"days"`
	Tasks      []jsonTask        `json:"tasks"`
}

type jsonTask struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	GoalID             string `json:"goal_id,omitempty"`
	Completed          bool   `json:"completed"`
	EstimatedPomodoros int    `json:"estimated_pomodoros,omitempty"`
	CompletedPomodoros int    `json:"completed_pomodoros"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// ToJSON writes the day-record history plus the current task list.
func ToJSON(history []store.DayRecord, tasks []store.Task, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Days:       history,
	}

	for _, t := range tasks {
		jt := jsonTask{
			ID:                 t.ID,
			Title:              t.Title,
			Completed:          t.Completed,
			CompletedPomodoros: t.CompletedPomodoros,
			CreatedAt:          t.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:          t.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if t.GoalID != nil {
			jt.GoalID = *t.GoalID
		}
		if t.EstimatedPomodoros != nil {
			jt.EstimatedPomodoros = *t.EstimatedPomodoros
		}
		out.Tasks = append(out.Tasks, jt)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
