package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ymachida/pomogoal/internal/store"
)

func sampleData() ([]store.DayRecord, []store.Task) {
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	goalID := "goal-1"
	estimate := 3

	history := []store.DayRecord{
		{Date: "2026-02-18", TotalPomodoros: 4, TotalMinutes: 100, GoalsCompleted: 1, GoalsTotal: 2},
		{Date: "2026-02-19", TotalPomodoros: 6, TotalMinutes: 150, GoalsCompleted: 3, GoalsTotal: 3},
	}

	tasks := []store.Task{
		{
			ID:                 "task-1",
			Title:              "write report",
			GoalID:             &goalID,
			Completed:          true,
			EstimatedPomodoros: &estimate,
			CompletedPomodoros: 3,
			CreatedAt:          now.Add(-24 * time.Hour),
			UpdatedAt:          now,
		},
		{
			ID:                 "task-2",
			Title:              "inbox zero",
			GoalID:             nil,
			Completed:          false,
			EstimatedPomodoros: nil,
			CompletedPomodoros: 0,
			CreatedAt:          now,
			UpdatedAt:          now,
		},
	}

	return history, tasks
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	history, _ := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(history, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Date", "Pomodoros", "Minutes", "Goals Completed", "Goals Total"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "2026-02-18" || row[1] != "4" || row[2] != "100" || row[3] != "1" || row[4] != "2" {
		t.Fatalf("unexpected first data row: %v", row)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatalf("ToCSV with no history: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	history, _ := sampleData()
	err := ToCSV(history, filepath.Join(t.TempDir(), "missing", "dir", "x.csv"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	history, tasks := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(history, tasks, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}

	if out.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
	if len(out.Days) != 2 {
		t.Fatalf("expected 2 day records, got %d", len(out.Days))
	}
	if out.Days[1].TotalPomodoros != 6 {
		t.Fatalf("unexpected day record: %+v", out.Days[1])
	}
	if len(out.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out.Tasks))
	}

	linked := out.Tasks[0]
	if linked.GoalID != "goal-1" || linked.EstimatedPomodoros != 3 {
		t.Fatalf("linked task lost its optional fields: %+v", linked)
	}

	bare := out.Tasks[1]
	if bare.GoalID != "" || bare.EstimatedPomodoros != 0 {
		t.Fatalf("bare task should have empty optionals: %+v", bare)
	}
}

func TestToJSONOmitsEmptyOptionals(t *testing.T) {
	_, tasks := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(nil, tasks, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var raw struct {
		Tasks []map[string]any `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}

	bare := raw.Tasks[1]
	if _, present := bare["goal_id"]; present {
		t.Fatal("nil goal link should be omitted from JSON")
	}
	if _, present := bare["estimated_pomodoros"]; present {
		t.Fatal("nil estimate should be omitted from JSON")
	}
}
