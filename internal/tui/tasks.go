package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ymachida/pomogoal/internal/store"
)

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks     []store.Task // display order
	goals     []store.Goal // for link names and form options
	cursor    int
	focusedID string

	confirmingID string // task pending delete confirmation

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle    *string
	formGoalID   *string
	formEstimate *string
}

func newTasksModel(s *store.Store) tasksModel {
	title, goalID, estimate := "", "", ""
	return tasksModel{
		store:        s,
		formTitle:    &title,
		formGoalID:   &goalID,
		formEstimate: &estimate,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return tasksDataMsg{
			tasks: store.SortTasksForDisplay(t.store.Tasks()),
			goals: t.store.LoadGoals(),
		}
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		t.goals = msg.goals
		if t.cursor >= len(t.tasks) {
			t.cursor = max(0, len(t.tasks)-1)
		}
		return t, nil

	case tea.KeyMsg:
		if t.confirmingID != "" {
			return t.updateConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.tasks)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(t.tasks) > 0 {
				t.store.ToggleTask(t.tasks[t.cursor].ID)
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Focus):
			if len(t.tasks) > 0 {
				id := t.tasks[t.cursor].ID
				if t.focusedID == id {
					id = ""
				}
				t.focusedID = id
				return t, func() tea.Msg { return taskFocusedMsg{id: id} }
			}
		case key.Matches(msg, keys.Delete):
			if len(t.tasks) > 0 {
				t.confirmingID = t.tasks[t.cursor].ID
			}
		case key.Matches(msg, keys.New):
			return t.showForm()
		}
	}
	return t, nil
}

func (t tasksModel) updateConfirm(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		id := t.confirmingID
		t.confirmingID = ""
		t.store.RemoveTask(id)
		if t.focusedID == id {
			t.focusedID = ""
		}
		return t, tea.Batch(
			t.refresh(),
			func() tea.Msg { return taskRemovedMsg{id: id} },
		)
	case key.Matches(msg, keys.Back):
		t.confirmingID = ""
	}
	return t, nil
}

func (t tasksModel) showForm() (tasksModel, tea.Cmd) {
	*t.formTitle = ""
	*t.formGoalID = ""
	*t.formEstimate = ""

	goalOptions := []huh.Option[string]{huh.NewOption("No goal", "")}
	for _, g := range t.goals {
		goalOptions = append(goalOptions, huh.NewOption(g.Text, g.ID))
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task title").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("enter a title")
					}
					return nil
				}).
				Value(t.formTitle),
			huh.NewSelect[string]().
				Title("Linked goal").
				Options(goalOptions...).
				Value(t.formGoalID),
			huh.NewInput().
				Title("Estimated pomodoros (optional)").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return nil
					}
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a number of 1 or more")
					}
					return nil
				}).
				Value(t.formEstimate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false

		var goalID *string
		if *t.formGoalID != "" {
			id := *t.formGoalID
			goalID = &id
		}
		var estimate *int
		if v := strings.TrimSpace(*t.formEstimate); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				estimate = &n
			}
		}

		if _, err := t.store.AddTask(*t.formTitle, goalID, estimate); err != nil {
			return t, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return t, t.refresh()
	}

	return t, cmd
}

func (t tasksModel) goalName(goalID *string) string {
	if goalID == nil {
		return ""
	}
	for _, g := range t.goals {
		if g.ID == *goalID {
			return g.Text
		}
	}
	return ""
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View()),
		)
	}

	title := titleStyle.Render("Tasks")

	if t.confirmingID != "" {
		var target store.Task
		for _, task := range t.tasks {
			if task.ID == t.confirmingID {
				target = task
				break
			}
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			warningStyle.Render(fmt.Sprintf("Delete %q?", target.Title)),
			"",
			mutedStyle.Render("  enter: delete  esc: cancel"),
		)
		return panelStyle.Width(w).Render(content)
	}

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range t.tasks {
		check := "☐"
		textStyle := normalItemStyle
		if task.Completed {
			check = successStyle.Render("☑")
			textStyle = strikeStyle
		}

		cursor := "  "
		if i == t.cursor {
			cursor = selectedItemStyle.Render("> ")
		}

		pomos := fmt.Sprintf("  %d", task.CompletedPomodoros)
		if task.EstimatedPomodoros != nil {
			pomos = fmt.Sprintf("  %d/%d", task.CompletedPomodoros, *task.EstimatedPomodoros)
		}

		linked := ""
		if name := t.goalName(task.GoalID); name != "" {
			linked = mutedStyle.Render("  ◎ " + name)
		}

		focus := ""
		if task.ID == t.focusedID {
			focus = highlightStyle.Render(" ▶ focused")
		}

		rows = append(rows, cursor+check+" "+textStyle.Render(task.Title)+mutedStyle.Render(pomos)+linked+focus)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: done  f: focus  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
