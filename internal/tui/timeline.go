package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sadopc/zenith/internal/planner"
	"github.com/sadopc/zenith/internal/store"
)

type timelineModel struct {
	store  *store.Store
	width  int
	height int

	plan   dayPlan
	loaded bool
	cursor int
}

func newTimelineModel(s *store.Store) timelineModel {
	return timelineModel{store: s}
}

func (t *timelineModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timelineModel) update(msg tea.Msg) (timelineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		t.plan = msg.plan
		t.loaded = true
		if t.cursor >= len(t.plan.result.Timeline) {
			t.cursor = max(0, len(t.plan.result.Timeline)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.plan.result.Timeline)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			return t, t.toggleSelected()
		case key.Matches(msg, keys.PrevDay):
			t.cursor = 0
			return t, func() tea.Msg { return dayShiftMsg{days: -1} }
		case key.Matches(msg, keys.NextDay):
			t.cursor = 0
			return t, func() tea.Msg { return dayShiftMsg{days: 1} }
		case key.Matches(msg, keys.Today):
			t.cursor = 0
			return t, func() tea.Msg { return dayShiftMsg{} }
		}
	}
	return t, nil
}

// toggleSelected flips completion of the task under the cursor. Completion
// never changes placement, the reload only refreshes the marks.
func (t timelineModel) toggleSelected() tea.Cmd {
	items := t.plan.result.Timeline
	if t.cursor >= len(items) {
		return nil
	}
	task, ok := t.plan.task(items[t.cursor])
	if !ok {
		return nil
	}
	s := t.store
	return func() tea.Msg {
		if err := s.SetTaskCompleted(task.ID, !task.Completed); err != nil {
			log.Error().Err(err).Int64("task", task.ID).Msg("toggle task")
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		log.Debug().Str("day", task.DayKey).Str("task", task.Name).Bool("completed", !task.Completed).Msg("task toggled")
		return reloadMsg{}
	}
}

func (t timelineModel) view() string {
	if t.width < 20 {
		return "Terminal too small"
	}
	if !t.loaded {
		return mutedStyle.Render("Loading day...")
	}

	contentWidth := t.width - 4

	cards := t.renderCards(contentWidth)
	schedule := t.renderSchedulePanel(contentWidth)

	panels := []string{cards, schedule}
	if dropped := t.renderUnscheduledPanel(contentWidth); dropped != "" {
		panels = append(panels, dropped)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (t timelineModel) renderCards(w int) string {
	sum := t.plan.summary
	cardWidth := max(16, (w-6)/3)

	card := func(label, value string) string {
		return cardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				mutedStyle.Render(label),
				cardValueStyle.Render(value),
			),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Events", fmt.Sprintf("%d", sum.TotalEvents)),
		card("Tasks Done", fmt.Sprintf("%d/%d", sum.TasksDone, sum.TasksTotal)),
		card("Day Status", sum.Mood.String()),
	)
}

func (t timelineModel) renderSchedulePanel(w int) string {
	title := titleStyle.Render(t.plan.key)
	window := mutedStyle.Render("window " + t.plan.window.String())
	header := fmt.Sprintf("%s  %s", title, window)

	items := t.plan.result.Timeline
	if len(items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Nothing planned. Press 2 to add classes, meals and tasks."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header, "")
	for i, it := range items {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		mark := " "
		if it.Category == planner.CategoryTask {
			mark = "○"
			if it.Completed {
				mark = successStyle.Render("✓")
			}
		}

		dot := categoryStyle(it.Category).Render("●")
		row := fmt.Sprintf("%s%s - %s %s %-6s %s %s",
			cursor, it.StartLabel, it.EndLabel, dot,
			string(it.Category), style.Render(it.Name),
			mutedStyle.Render("("+formatMinutes(it.Duration)+")"),
		)
		rows = append(rows, row+" "+mark)
	}

	if t.plan.err != nil {
		rows = append(rows, "", errorStyle.Render("  strict mode: schedule has warnings"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t timelineModel) renderUnscheduledPanel(w int) string {
	dropped := t.plan.result.Dropped()
	if len(dropped) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, warningStyle.Render(fmt.Sprintf("Unscheduled (%d)", len(dropped))))
	for _, o := range dropped {
		rows = append(rows, fmt.Sprintf("  %s %s  %s",
			accentStyle.Render("!"), o.Name, mutedStyle.Render(formatMinutes(o.Duration)+" does not fit"),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
