package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ymachida/pomogoal/internal/store"
)

type goalsModel struct {
	store  *store.Store
	width  int
	height int

	goals     []store.Goal
	cursor    int
	focusedID string

	formActive bool
	form       *huh.Form

	// Form field pointer (survives value copies)
	formText *string
}

func newGoalsModel(s *store.Store) goalsModel {
	text := ""
	return goalsModel{
		store:    s,
		formText: &text,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

func (g goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return goalsDataMsg{goals: g.store.LoadGoals()}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		g.goals = msg.goals
		if g.cursor >= len(g.goals) {
			g.cursor = max(0, len(g.goals)-1)
		}
		return g, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, keys.Down):
			if g.cursor < len(g.goals)-1 {
				g.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(g.goals) > 0 {
				g.goals = g.store.ToggleGoal(g.goals[g.cursor].ID)
			}
		case key.Matches(msg, keys.MoreTarget):
			if len(g.goals) > 0 {
				g.goals = g.store.AdjustTarget(g.goals[g.cursor].ID, 1)
			}
		case key.Matches(msg, keys.LessTarget):
			if len(g.goals) > 0 {
				g.goals = g.store.AdjustTarget(g.goals[g.cursor].ID, -1)
			}
		case key.Matches(msg, keys.Focus):
			if len(g.goals) > 0 {
				id := g.goals[g.cursor].ID
				if g.focusedID == id {
					id = ""
				}
				g.focusedID = id
				return g, func() tea.Msg { return goalFocusedMsg{id: id} }
			}
		case key.Matches(msg, keys.Delete):
			if len(g.goals) > 0 {
				id := g.goals[g.cursor].ID
				g.goals = g.store.RemoveGoal(id)
				if g.cursor >= len(g.goals) {
					g.cursor = max(0, len(g.goals)-1)
				}
				if g.focusedID == id {
					g.focusedID = ""
				}
				return g, func() tea.Msg { return goalRemovedMsg{id: id} }
			}
		case key.Matches(msg, keys.New):
			return g.showForm()
		}
	}
	return g, nil
}

func (g goalsModel) showForm() (goalsModel, tea.Cmd) {
	*g.formText = ""

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal for today").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("enter a goal")
					}
					return nil
				}).
				Value(g.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		if strings.TrimSpace(*g.formText) != "" {
			g.goals = g.store.AddGoal(*g.formText)
		}
		return g, nil
	}

	return g, cmd
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		title := titleStyle.Render("New Goal")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", g.form.View()),
		)
	}

	completed := 0
	for _, goal := range g.goals {
		if goal.Completed {
			completed++
		}
	}
	title := titleStyle.Render("Today's Goals") + "  " +
		highlightStyle.Render(fmt.Sprintf("%d / %d", completed, len(g.goals)))

	if len(g.goals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No goals yet. Press n to set one for today."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, goal := range g.goals {
		check := "☐"
		textStyle := normalItemStyle
		if goal.Completed {
			check = successStyle.Render("☑")
			textStyle = strikeStyle
		}

		cursor := "  "
		if i == g.cursor {
			cursor = selectedItemStyle.Render("> ")
		}

		focus := ""
		if goal.ID == g.focusedID {
			focus = highlightStyle.Render(" ▶ focused")
		}

		pomos := mutedStyle.Render(fmt.Sprintf("  %d/%d", goal.PomodorosDone, goal.PomodorosTarget))
		rows = append(rows, cursor+check+" "+textStyle.Render(goal.Text)+pomos+focus)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: done  +/-: target  f: focus  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
