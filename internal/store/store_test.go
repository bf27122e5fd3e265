package store

import (
	"fmt"
	"testing"
	"time"
)

func clockAt(t *testing.T, date string) FixedClock {
	t.Helper()
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	// Mid-day, so Now() and Today() agree in any zone handling.
	return FixedClock{Time: parsed.Add(12 * time.Hour)}
}

func newTestStore(t *testing.T) *Store {
	return newTestStoreAt(t, "2026-02-20")
}

func newTestStoreAt(t *testing.T, date string) *Store {
	t.Helper()
	s, err := NewWithClock(":memory:", clockAt(t, date))
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// advanceTo moves the store's clock to a later calendar day.
func advanceTo(t *testing.T, s *Store, date string) {
	t.Helper()
	s.clock = clockAt(t, date)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/pomogoal.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Key/value adapter
// ============================================================

func TestGetRawAbsent(t *testing.T) {
	s := newTestStore(t)
	if _, ok := s.getRaw("nope"); ok {
		t.Fatal("missing key should report absent")
	}
}

func TestSetGetRaw(t *testing.T) {
	s := newTestStore(t)
	s.setRaw("k", "v1")
	s.setRaw("k", "v2") // upsert overwrites

	v, ok := s.getRaw("k")
	if !ok || v != "v2" {
		t.Fatalf("got (%q, %v), want (\"v2\", true)", v, ok)
	}
}

func TestRemoveRaw(t *testing.T) {
	s := newTestStore(t)
	s.setRaw("k", "v")
	s.removeRaw("k")
	if _, ok := s.getRaw("k"); ok {
		t.Fatal("removed key should be absent")
	}

	// Removing a missing key is fine.
	s.removeRaw("k")
}

func TestUndecodableValueTreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	s.setRaw(keyGoals, "{not json")

	goals := s.LoadGoals()
	if len(goals) != 0 {
		t.Fatalf("corrupt snapshot should read as empty, got %d goals", len(goals))
	}

	s.setRaw(keyHistory, "also not json")
	if got := s.History(); len(got) != 0 {
		t.Fatalf("corrupt history should read as empty, got %d records", len(got))
	}

	s.setRaw(keyCounter, "[]") // wrong shape decodes to zero value
	if got := s.TodayPomodoros(); got != 0 {
		t.Fatalf("corrupt counter should read as 0, got %d", got)
	}
}

// ============================================================
// Goals
// ============================================================

func TestAddGoalDefaults(t *testing.T) {
	s := newTestStore(t)
	goals := s.AddGoal("  ship the report  ")

	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if g.Text != "ship the report" {
		t.Fatalf("text should be trimmed, got %q", g.Text)
	}
	if g.Completed {
		t.Fatal("new goal should not be completed")
	}
	if g.PomodorosTarget != 1 || g.PomodorosDone != 0 {
		t.Fatalf("expected target=1 done=0, got %d/%d", g.PomodorosTarget, g.PomodorosDone)
	}
}

func TestAddGoalUniqueIDs(t *testing.T) {
	s := newTestStore(t)
	s.AddGoal("a")
	goals := s.AddGoal("b")
	if goals[0].ID == goals[1].ID {
		t.Fatal("goal IDs should be unique")
	}
}

func TestLoadGoalsEmpty(t *testing.T) {
	s := newTestStore(t)
	goals := s.LoadGoals()
	if len(goals) != 0 {
		t.Fatalf("fresh store should have no goals, got %d", len(goals))
	}
}

func TestLoadGoalsSameDay(t *testing.T) {
	s := newTestStore(t)
	s.AddGoal("persist me")

	goals := s.LoadGoals()
	if len(goals) != 1 || goals[0].Text != "persist me" {
		t.Fatalf("same-day load should return the saved list, got %+v", goals)
	}
}

func TestToggleGoal(t *testing.T) {
	s := newTestStore(t)
	goals := s.AddGoal("g")
	id := goals[0].ID

	goals = s.ToggleGoal(id)
	if !goals[0].Completed {
		t.Fatal("toggle should mark completed")
	}
	goals = s.ToggleGoal(id)
	if goals[0].Completed {
		t.Fatal("second toggle should unmark")
	}
}

func TestToggleGoalUnknownID(t *testing.T) {
	s := newTestStore(t)
	s.AddGoal("g")
	goals := s.ToggleGoal("missing")
	if len(goals) != 1 || goals[0].Completed {
		t.Fatal("toggling a missing id should be a no-op")
	}
}

func TestRemoveGoal(t *testing.T) {
	s := newTestStore(t)
	goals := s.AddGoal("keep")
	keepID := goals[0].ID
	goals = s.AddGoal("drop")
	dropID := goals[1].ID

	goals = s.RemoveGoal(dropID)
	if len(goals) != 1 || goals[0].ID != keepID {
		t.Fatalf("expected only %q to remain, got %+v", keepID, goals)
	}
}

func TestAdjustTargetFloor(t *testing.T) {
	s := newTestStore(t)
	goals := s.AddGoal("g")
	id := goals[0].ID

	goals = s.AdjustTarget(id, 3)
	if goals[0].PomodorosTarget != 4 {
		t.Fatalf("expected target 4, got %d", goals[0].PomodorosTarget)
	}

	goals = s.AdjustTarget(id, -100)
	if goals[0].PomodorosTarget != 1 {
		t.Fatalf("target must floor at 1, got %d", goals[0].PomodorosTarget)
	}

	goals = s.AdjustTarget(id, -1)
	if goals[0].PomodorosTarget != 1 {
		t.Fatalf("target must stay at 1, got %d", goals[0].PomodorosTarget)
	}
}

func TestIncrementGoalDoneNoCeiling(t *testing.T) {
	s := newTestStore(t)
	goals := s.AddGoal("g") // target 1
	id := goals[0].ID

	for i := 0; i < 3; i++ {
		goals = s.IncrementGoalDone(id)
	}
	if goals[0].PomodorosDone != 3 {
		t.Fatalf("done should pass the target freely, got %d", goals[0].PomodorosDone)
	}
}

// ============================================================
// Rollover and archival
// ============================================================

func TestRolloverArchivesPriorDay(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	goals := s.AddGoal("finish draft")
	s.ToggleGoal(goals[0].ID)
	for i := 0; i < 5; i++ {
		s.IncrementTodayPomodoros()
	}

	advanceTo(t, s, "2026-02-21")
	goals = s.LoadGoals()
	if len(goals) != 0 {
		t.Fatalf("new day should start with no goals, got %d", len(goals))
	}

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(history))
	}
	rec := history[0]
	if rec.Date != "2026-02-20" {
		t.Fatalf("record date = %q, want 2026-02-20", rec.Date)
	}
	if rec.TotalPomodoros != 5 || rec.TotalMinutes != 125 {
		t.Fatalf("expected 5 pomodoros / 125 min, got %d / %d", rec.TotalPomodoros, rec.TotalMinutes)
	}
	if rec.GoalsCompleted != 1 || rec.GoalsTotal != 1 {
		t.Fatalf("expected 1/1 goals, got %d/%d", rec.GoalsCompleted, rec.GoalsTotal)
	}

	// Stale snapshot and counter must be cleared.
	if _, ok := s.getRaw(keyGoals); ok {
		t.Fatal("stale goals snapshot should be removed")
	}
	if _, ok := s.getRaw(keyCounter); ok {
		t.Fatal("stale counter should be removed")
	}
	if s.TodayPomodoros() != 0 {
		t.Fatal("counter should read 0 on the new day")
	}
}

func TestRolloverIdempotent(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	s.AddGoal("g")
	s.IncrementTodayPomodoros()

	advanceTo(t, s, "2026-02-21")
	s.LoadGoals()
	first := s.History()

	s.LoadGoals()
	second := s.History()

	if len(first) != len(second) {
		t.Fatalf("second rollover check changed history length: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("record %d changed: %+v -> %+v", i, first[i], second[i])
		}
	}
}

func TestRolloverSkipsEmptyDay(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	// Snapshot exists but holds nothing, and no pomodoros were done.
	s.SaveGoals([]Goal{})
	s.removeRaw(keyHistory) // drop the current-day record SaveGoals wrote

	advanceTo(t, s, "2026-02-21")
	s.LoadGoals()

	if got := s.History(); len(got) != 0 {
		t.Fatalf("an empty day should not be archived, got %+v", got)
	}
}

func TestRolloverKeepsPomodoroOnlyDay(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	s.SaveGoals([]Goal{})
	for i := 0; i < 2; i++ {
		s.IncrementTodayPomodoros()
	}

	advanceTo(t, s, "2026-02-21")
	s.LoadGoals()

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("a day with pomodoros but no goals should archive, got %d records", len(history))
	}
	rec := history[0]
	if rec.TotalPomodoros != 2 || rec.GoalsTotal != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestRolloverIgnoresForeignCounter(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	s.AddGoal("g")
	// A counter from some other day must not leak into the archive.
	s.setJSON(keyCounter, dayCount{Date: "2026-02-19", Count: 9})

	advanceTo(t, s, "2026-02-21")
	s.LoadGoals()

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
	if history[0].TotalPomodoros != 0 {
		t.Fatalf("mismatched counter should archive as 0, got %d", history[0].TotalPomodoros)
	}
}

func TestRecordCurrentDayWritesZeroRecord(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	// Active-day recording always writes, even with nothing done, so
	// the stats chart has a bar for today.
	s.RecordCurrentDay([]Goal{})

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("expected today's zero record, got %d records", len(history))
	}
	rec := history[0]
	if rec.Date != "2026-02-20" || rec.TotalPomodoros != 0 || rec.GoalsTotal != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestMutationsKeepTodayRecordCurrent(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	goals := s.AddGoal("a")
	s.AddGoal("b")
	s.ToggleGoal(goals[0].ID)

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("expected a single live record, got %d", len(history))
	}
	rec := history[0]
	if rec.GoalsTotal != 2 || rec.GoalsCompleted != 1 {
		t.Fatalf("expected 1/2 goals, got %d/%d", rec.GoalsCompleted, rec.GoalsTotal)
	}
}

// ============================================================
// History log
// ============================================================

func TestUpsertReplacesSameDate(t *testing.T) {
	s := newTestStore(t)
	s.upsertDayRecord(DayRecord{Date: "2026-01-01", TotalPomodoros: 1})
	s.upsertDayRecord(DayRecord{Date: "2026-01-01", TotalPomodoros: 7})

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("same-date upsert must replace, got %d records", len(history))
	}
	if history[0].TotalPomodoros != 7 {
		t.Fatalf("expected replacement value 7, got %d", history[0].TotalPomodoros)
	}
}

func TestHistorySortedAscendingNoDuplicates(t *testing.T) {
	s := newTestStore(t)
	dates := []string{"2026-01-03", "2026-01-01", "2026-01-02", "2026-01-01"}
	for _, d := range dates {
		s.upsertDayRecord(DayRecord{Date: d})
	}

	history := s.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 unique dates, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].Date >= history[i].Date {
			t.Fatalf("history not strictly ascending at %d: %q >= %q",
				i, history[i-1].Date, history[i].Date)
		}
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	s := newTestStore(t)
	base, _ := time.Parse(DateLayout, "2025-01-01")
	total := MaxHistoryDays + 10
	for i := 0; i < total; i++ {
		d := base.AddDate(0, 0, i).Format(DateLayout)
		s.upsertDayRecord(DayRecord{Date: d, TotalPomodoros: i})
	}

	history := s.History()
	if len(history) != MaxHistoryDays {
		t.Fatalf("expected %d records, got %d", MaxHistoryDays, len(history))
	}
	wantOldest := base.AddDate(0, 0, total-MaxHistoryDays).Format(DateLayout)
	if history[0].Date != wantOldest {
		t.Fatalf("oldest record = %q, want %q (evict from the front)", history[0].Date, wantOldest)
	}
	wantNewest := base.AddDate(0, 0, total-1).Format(DateLayout)
	if history[len(history)-1].Date != wantNewest {
		t.Fatalf("newest record = %q, want %q", history[len(history)-1].Date, wantNewest)
	}
}

// ============================================================
// Daily pomodoro counter
// ============================================================

func TestTodayPomodorosDefault(t *testing.T) {
	s := newTestStore(t)
	if got := s.TodayPomodoros(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestIncrementTodayPomodoros(t *testing.T) {
	s := newTestStore(t)
	for want := 1; want <= 4; want++ {
		if got := s.IncrementTodayPomodoros(); got != want {
			t.Fatalf("increment %d returned %d", want, got)
		}
	}
	if got := s.TodayPomodoros(); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestStaleCounterReadsZero(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	s.IncrementTodayPomodoros()

	advanceTo(t, s, "2026-02-21")
	if got := s.TodayPomodoros(); got != 0 {
		t.Fatalf("yesterday's counter should read 0 today, got %d", got)
	}

	// And the first increment of the new day restarts from 1.
	if got := s.IncrementTodayPomodoros(); got != 1 {
		t.Fatalf("expected fresh counter of 1, got %d", got)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	task, err := s.AddTask("A", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if task.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if task.Completed || task.CompletedPomodoros != 0 {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if task.GoalID != nil {
		t.Fatal("goal link should default to none")
	}
	if task.EstimatedPomodoros != nil {
		t.Fatal("estimate should default to none")
	}
	if task.CreatedAt.IsZero() || !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("createdAt/updatedAt should be set and equal: %+v", task)
	}

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("task not persisted: %+v", tasks)
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := s.AddTask(title, nil, nil); err != ErrEmptyTitle {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("rejected task must not be stored")
	}
}

func TestAddTaskTrimsTitle(t *testing.T) {
	s := newTestStore(t)
	task, err := s.AddTask("  write tests  ", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "write tests" {
		t.Fatalf("title should be trimmed, got %q", task.Title)
	}
}

func TestToggleTaskRefreshesUpdatedAt(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")
	task, _ := s.AddTask("A", nil, nil)

	s.clock = FixedClock{Time: task.CreatedAt.Add(time.Hour)}
	tasks := s.ToggleTask(task.ID)

	if !tasks[0].Completed {
		t.Fatal("toggle should mark completed")
	}
	if !tasks[0].UpdatedAt.After(tasks[0].CreatedAt) {
		t.Fatal("UpdatedAt should move forward on toggle")
	}
}

func TestRemoveTask(t *testing.T) {
	s := newTestStore(t)
	keep, _ := s.AddTask("keep", nil, nil)
	drop, _ := s.AddTask("drop", nil, nil)

	tasks := s.RemoveTask(drop.ID)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	for _, task := range s.Tasks() {
		if task.ID == drop.ID {
			t.Fatal("deleted task came back")
		}
	}

	// The survivor is untouched.
	got := s.Tasks()[0]
	if got.ID != keep.ID || got.Title != "keep" || got.Completed {
		t.Fatalf("surviving task changed: %+v", got)
	}
}

func TestIncrementTaskPomodorosNoCeiling(t *testing.T) {
	s := newTestStore(t)
	est := 1
	task, _ := s.AddTask("A", nil, &est)

	var tasks []Task
	for i := 0; i < 3; i++ {
		tasks = s.IncrementTaskPomodoros(task.ID)
	}
	if tasks[0].CompletedPomodoros != 3 {
		t.Fatalf("completed should pass the estimate freely, got %d", tasks[0].CompletedPomodoros)
	}
}

func TestClearGoalReferences(t *testing.T) {
	s := newTestStore(t)
	g := "goal-1"
	other := "goal-2"
	s.AddTask("linked a", &g, nil)
	s.AddTask("linked b", &g, nil)
	s.AddTask("other goal", &other, nil)
	s.AddTask("no goal", nil, nil)

	tasks := s.ClearGoalReferences(g)
	if len(tasks) != 4 {
		t.Fatalf("clearing references must not change task count, got %d", len(tasks))
	}
	for _, task := range tasks {
		switch task.Title {
		case "linked a", "linked b":
			if task.GoalID != nil {
				t.Fatalf("%q should have lost its goal link", task.Title)
			}
		case "other goal":
			if task.GoalID == nil || *task.GoalID != other {
				t.Fatalf("%q should keep its goal link", task.Title)
			}
		}
	}
}

func TestRemoveGoalClearsTaskReferences(t *testing.T) {
	s := newTestStore(t)
	goals := s.AddGoal("g")
	id := goals[0].ID
	s.AddTask("linked", &id, nil)

	s.RemoveGoal(id)

	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("task should survive goal deletion, got %d", len(tasks))
	}
	if tasks[0].GoalID != nil {
		t.Fatal("task should not reference a deleted goal")
	}
}

func TestSortTasksForDisplay(t *testing.T) {
	s := newTestStoreAt(t, "2026-02-20")

	base := s.clock.Now()
	first, _ := s.AddTask("first", nil, nil)
	s.clock = FixedClock{Time: base.Add(time.Minute)}
	second, _ := s.AddTask("second", nil, nil)
	s.clock = FixedClock{Time: base.Add(2 * time.Minute)}
	third, _ := s.AddTask("third", nil, nil)

	s.ToggleTask(first.ID)

	sorted := SortTasksForDisplay(s.Tasks())
	want := []string{second.ID, third.ID, first.ID}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Fatalf("position %d = %q, want %q (incomplete first, then createdAt)", i, sorted[i].ID, id)
		}
	}

	// Storage order is untouched.
	stored := s.Tasks()
	if stored[0].ID != first.ID {
		t.Fatal("display sort must not reorder storage")
	}
}

// ============================================================
// Persistence round trip
// ============================================================

func TestStateSurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/pomogoal.db"

	s, err := NewWithClock(path, clockAt(t, "2026-02-20"))
	if err != nil {
		t.Fatal(err)
	}
	s.AddGoal("persisted goal")
	s.AddTask("persisted task", nil, nil)
	s.IncrementTodayPomodoros()
	s.Close()

	s2, err := NewWithClock(path, clockAt(t, "2026-02-20"))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	if goals := s2.LoadGoals(); len(goals) != 1 || goals[0].Text != "persisted goal" {
		t.Fatalf("goals did not survive reopen: %+v", goals)
	}
	if tasks := s2.Tasks(); len(tasks) != 1 || tasks[0].Title != "persisted task" {
		t.Fatalf("tasks did not survive reopen: %+v", tasks)
	}
	if got := s2.TodayPomodoros(); got != 1 {
		t.Fatalf("counter did not survive reopen: %d", got)
	}
}

func TestManyDaysOfActivity(t *testing.T) {
	s := newTestStoreAt(t, "2026-01-01")
	base, _ := time.Parse(DateLayout, "2026-01-01")

	days := 100
	for i := 0; i < days; i++ {
		advanceTo(t, s, base.AddDate(0, 0, i).Format(DateLayout))
		s.LoadGoals() // rollover check
		s.AddGoal(fmt.Sprintf("goal %d", i))
		s.IncrementTodayPomodoros()
	}

	history := s.History()
	if len(history) > MaxHistoryDays {
		t.Fatalf("history over the cap: %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].Date >= history[i].Date {
			t.Fatalf("history out of order at %d", i)
		}
	}
}
