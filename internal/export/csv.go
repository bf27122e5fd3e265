package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ymachida/pomogoal/internal/store"
)

// ToCSV writes the day-record history, one row per archived day.
func ToCSV(history []store.DayRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Pomodoros", "Minutes", "Goals Completed", "Goals Total"}); err != nil {
		return err
	}

	for _, r := range history {
		row := []string{
			r.Date,
			fmt.Sprintf("%d", r.TotalPomodoros),
			fmt.Sprintf("%d", r.TotalMinutes),
			fmt.Sprintf("%d", r.GoalsCompleted),
			fmt.Sprintf("%d", r.GoalsTotal),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
