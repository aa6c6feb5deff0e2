package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sadopc/zenith/internal/planner"
	"github.com/sadopc/zenith/internal/store"
)

const (
	formTask  = "task"
	formClass = "class"
	formMeal  = "meal"
)

// editorEntry points into one of the draft's slices.
type editorEntry struct {
	kind  string
	index int
}

type editorModel struct {
	store  *store.Store
	width  int
	height int

	draft  store.DayData
	window planner.Window
	dirty  bool
	cursor int

	formActive bool
	form       *huh.Form
	formType   string

	// Form field pointers (survive value copies)
	formName     *string
	formDuration *string
	formUnit     *string
	formPriority *string
	formStart    *string
	formEnd      *string
}

func newEditorModel(s *store.Store) editorModel {
	name, dur, unit, prio, start, end := "", "", "", "", "", ""
	return editorModel{
		store:        s,
		window:       planner.DefaultWindow,
		formName:     &name,
		formDuration: &dur,
		formUnit:     &unit,
		formPriority: &prio,
		formStart:    &start,
		formEnd:      &end,
	}
}

func (e *editorModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

// draftFromPlan copies the stored day so edits never alias the loaded plan.
// Days with nothing stored start from the default meals.
func draftFromPlan(p dayPlan) store.DayData {
	if p.data == nil {
		d := store.DayData{Day: store.Day{Key: p.key, Date: p.date.Format("2006-01-02")}}
		for _, m := range p.meals {
			m.DayKey = p.key
			d.Meals = append(d.Meals, m)
		}
		return d
	}
	d := *p.data
	d.Classes = slices.Clone(p.data.Classes)
	d.Meals = slices.Clone(p.data.Meals)
	d.Tasks = slices.Clone(p.data.Tasks)
	return d
}

func (e editorModel) entries() []editorEntry {
	var out []editorEntry
	for i := range e.draft.Classes {
		out = append(out, editorEntry{kind: formClass, index: i})
	}
	for i := range e.draft.Meals {
		out = append(out, editorEntry{kind: formMeal, index: i})
	}
	for i := range e.draft.Tasks {
		out = append(out, editorEntry{kind: formTask, index: i})
	}
	return out
}

func (e editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case planLoadedMsg:
		e.window = msg.plan.window
		if e.dirty && e.draft.Key == msg.plan.key {
			return e, nil
		}
		var cmd tea.Cmd
		if e.dirty {
			log.Info().Str("day", e.draft.Key).Msg("discarding unsaved edits")
			cmd = statusCmd("Unsaved edits to " + e.draft.Key + " discarded")
		}
		e.draft = draftFromPlan(msg.plan)
		e.dirty = false
		e.cursor = 0
		return e, cmd

	case daySavedMsg:
		if msg.key == e.draft.Key {
			e.dirty = false
		}
		return e, nil

	case tea.KeyMsg:
		return e.updateList(msg)
	}
	return e, nil
}

func (e editorModel) updateList(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	n := len(e.entries())
	switch {
	case key.Matches(msg, keys.Up):
		if e.cursor > 0 {
			e.cursor--
		}
	case key.Matches(msg, keys.Down):
		if e.cursor < n-1 {
			e.cursor++
		}
	case key.Matches(msg, keys.NewTask):
		return e.showTaskForm()
	case key.Matches(msg, keys.NewClass):
		return e.showClassForm()
	case key.Matches(msg, keys.NewMeal):
		return e.showMealForm()
	case key.Matches(msg, keys.Delete):
		if n > 0 {
			e.removeEntry(e.entries()[e.cursor])
			if e.cursor >= n-1 {
				e.cursor = max(0, n-2)
			}
		}
	case key.Matches(msg, keys.Save):
		return e, e.save()
	case key.Matches(msg, keys.PrevDay):
		return e, func() tea.Msg { return dayShiftMsg{days: -1} }
	case key.Matches(msg, keys.NextDay):
		return e, func() tea.Msg { return dayShiftMsg{days: 1} }
	}
	return e, nil
}

func (e *editorModel) removeEntry(en editorEntry) {
	switch en.kind {
	case formClass:
		e.draft.Classes = slices.Delete(e.draft.Classes, en.index, en.index+1)
	case formMeal:
		e.draft.Meals = slices.Delete(e.draft.Meals, en.index, en.index+1)
	case formTask:
		e.draft.Tasks = slices.Delete(e.draft.Tasks, en.index, en.index+1)
	}
	e.dirty = true
}

func (e editorModel) save() tea.Cmd {
	s := e.store
	draft := e.draft
	return func() tea.Msg {
		saved, err := s.SaveDay(draft)
		if err != nil {
			log.Error().Err(err).Str("day", draft.Key).Msg("save day")
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		log.Info().Str("day", saved.Key).Int("tasks", len(saved.Tasks)).Msg("day saved")
		return daySavedMsg{key: saved.Key}
	}
}

// --- Forms ---

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateClock(s string) error {
	_, err := planner.ParseClockStrict(s)
	return err
}

func validateDuration(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("duration must be a positive whole number")
	}
	return nil
}

func (e editorModel) showTaskForm() (editorModel, tea.Cmd) {
	*e.formName = ""
	*e.formDuration = "60"
	*e.formUnit = string(planner.UnitMinutes)
	*e.formPriority = planner.PriorityMedium.String()
	e.formType = formTask

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(e.formName).Validate(validateName),
			huh.NewInput().Title("Duration").Value(e.formDuration).Validate(validateDuration),
			huh.NewSelect[string]().Title("Unit").
				Options(
					huh.NewOption("Minutes", string(planner.UnitMinutes)),
					huh.NewOption("Hours", string(planner.UnitHours)),
				).Value(e.formUnit),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("High", planner.PriorityHigh.String()),
					huh.NewOption("Medium", planner.PriorityMedium.String()),
					huh.NewOption("Low", planner.PriorityLow.String()),
				).Value(e.formPriority),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e editorModel) showClassForm() (editorModel, tea.Cmd) {
	*e.formName = ""
	*e.formStart = "09:00"
	*e.formEnd = "10:30"
	e.formType = formClass

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Class Name").Value(e.formName).Validate(validateName),
			huh.NewInput().Title("Start (HH:MM)").Value(e.formStart).Validate(validateClock),
			huh.NewInput().Title("End (HH:MM)").Value(e.formEnd).Validate(validateClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e editorModel) showMealForm() (editorModel, tea.Cmd) {
	*e.formName = "Lunch"
	*e.formStart = "13:00"
	e.formType = formMeal

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Meal Name").Value(e.formName).Validate(validateName),
			huh.NewInput().Title(fmt.Sprintf("Time (HH:MM), lasts %d min", planner.MealDuration)).
				Value(e.formStart).Validate(validateClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e editorModel) updateForm(msg tea.Msg) (editorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		e.form = nil
		if err := e.applyForm(); err != nil {
			return e, func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
		}
		return e, nil
	}

	return e, cmd
}

// applyForm appends the completed form's entry to the draft.
func (e *editorModel) applyForm() error {
	name := strings.TrimSpace(*e.formName)

	switch e.formType {
	case formTask:
		dur, err := strconv.Atoi(strings.TrimSpace(*e.formDuration))
		if err != nil || dur <= 0 {
			return errors.New("duration must be a positive whole number")
		}
		e.draft.Tasks = append(e.draft.Tasks, store.Task{
			DayKey:   e.draft.Key,
			Name:     name,
			Duration: dur,
			Unit:     *e.formUnit,
			Priority: *e.formPriority,
		})

	case formClass:
		start, err := planner.ParseClockStrict(*e.formStart)
		if err != nil {
			return err
		}
		end, err := planner.ParseClockStrict(*e.formEnd)
		if err != nil {
			return err
		}
		if end <= start {
			return fmt.Errorf("class %q must end after it starts", name)
		}
		e.draft.Classes = append(e.draft.Classes, store.FixedEvent{
			DayKey: e.draft.Key,
			Kind:   store.KindClass,
			Name:   name,
			Start:  *e.formStart,
			End:    *e.formEnd,
		})

	case formMeal:
		if err := validateClock(*e.formStart); err != nil {
			return err
		}
		e.draft.Meals = append(e.draft.Meals, store.FixedEvent{
			DayKey: e.draft.Key,
			Kind:   store.KindMeal,
			Name:   name,
			Start:  *e.formStart,
		})
	}

	e.dirty = true
	return nil
}

// --- View ---

func (e editorModel) view() string {
	w := e.width - 4

	if e.formActive && e.form != nil {
		title := titleStyle.Render("New " + strings.ToUpper(e.formType[:1]) + e.formType[1:])
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", e.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Edit " + e.draft.Key)
	if e.dirty {
		title += warningStyle.Render("  (unsaved)")
	}

	var rows []string
	rows = append(rows, title, "")

	entries := e.entries()
	if len(entries) == 0 {
		rows = append(rows, mutedStyle.Render("Empty day. Press n, c or m to add a task, class or meal."))
	}

	lastKind := ""
	for i, en := range entries {
		if en.kind != lastKind {
			if lastKind != "" {
				rows = append(rows, "")
			}
			rows = append(rows, mutedStyle.Render(sectionTitle(en.kind)))
			lastKind = en.kind
		}
		cursor := "  "
		style := normalItemStyle
		if i == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+e.describe(en)))
	}

	rows = append(rows, "", e.renderPreview())
	rows = append(rows, "", mutedStyle.Render("  n: task  c: class  m: meal  d: remove  s: save  ←/→: day"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func sectionTitle(kind string) string {
	switch kind {
	case formClass:
		return "Classes"
	case formMeal:
		return "Meals"
	default:
		return "Tasks"
	}
}

func (e editorModel) describe(en editorEntry) string {
	switch en.kind {
	case formClass:
		c := e.draft.Classes[en.index]
		return fmt.Sprintf("%s - %s  %s", c.Start, c.End, c.Name)
	case formMeal:
		m := e.draft.Meals[en.index]
		return fmt.Sprintf("%s          %s", m.Start, m.Name)
	default:
		t := e.draft.Tasks[en.index]
		return fmt.Sprintf("%-6s %4d%-1s   %s", t.Priority, t.Duration, t.Unit, t.Name)
	}
}

// renderPreview schedules the draft so placement problems show up before
// saving.
func (e editorModel) renderPreview() string {
	res, _ := planner.Build(e.draft.Plan(), planner.Options{Window: e.window})
	dropped := res.Dropped()
	line := fmt.Sprintf("  Preview: %d items in %s", len(res.Timeline), e.window)
	if len(dropped) > 0 {
		return warningStyle.Render(fmt.Sprintf("%s, %d task(s) will not fit", line, len(dropped)))
	}
	return mutedStyle.Render(line)
}
