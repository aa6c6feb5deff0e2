package planner

import (
	"errors"
	"fmt"
	"slices"
)

var ErrTaskUnplaceable = errors.New("task does not fit in any gap")

type Status int

const (
	StatusPlaced Status = iota
	StatusDropped
)

func (s Status) String() string {
	if s == StatusPlaced {
		return "placed"
	}
	return "dropped"
}

// Outcome records what happened to one input task.
type Outcome struct {
	TaskIndex int
	Name      string
	Duration  int // normalized, in minutes
	Status    Status
	Reason    error
}

type Options struct {
	// Window bounds placement. The zero value means DefaultWindow.
	Window Window
	// Strict makes Build return its warnings as an error.
	Strict bool
}

func (o Options) window() Window {
	if o.Window == (Window{}) {
		return DefaultWindow
	}
	return o.Window
}

type Result struct {
	Timeline []TimelineItem
	Outcomes []Outcome
	Warnings []error
}

// Dropped returns the outcomes of tasks that could not be placed.
func (r Result) Dropped() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusDropped {
			out = append(out, o)
		}
	}
	return out
}

// BuildSchedule places tasks around fixed events using the default window
// and returns only the timeline. Tasks that do not fit are left out.
func BuildSchedule(events []FixedEvent, tasks []Task) []TimelineItem {
	return Schedule(events, tasks, Options{}).Timeline
}

// Schedule seeds a timeline with the fixed events and greedily places each
// task, highest priority first, into the earliest gap that can hold it.
// Placements are sequential: every task sees the tasks placed before it.
func Schedule(events []FixedEvent, tasks []Task, opts Options) Result {
	w := opts.window()

	timeline := make([]TimelineItem, 0, len(events)+len(tasks))
	for _, e := range events {
		timeline = append(timeline, TimelineItem{
			Name:      e.Name,
			Category:  e.Category,
			Start:     e.Start,
			End:       e.End,
			Duration:  e.End - e.Start,
			TaskIndex: -1,
		})
	}
	sortTimeline(timeline)

	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return tasks[a].Priority.rank() - tasks[b].Priority.rank()
	})

	res := Result{Outcomes: make([]Outcome, len(tasks))}
	for _, idx := range order {
		task := tasks[idx]
		dur := task.Minutes()
		out := Outcome{TaskIndex: idx, Name: task.Name, Duration: dur}

		if start, ok := findGap(timeline, w, dur); ok {
			timeline = append(timeline, TimelineItem{
				Name:      task.Name,
				Category:  CategoryTask,
				Start:     start,
				End:       start + dur,
				Duration:  dur,
				Completed: task.Completed,
				TaskIndex: idx,
			})
			sortTimeline(timeline)
			out.Status = StatusPlaced
		} else {
			out.Status = StatusDropped
			out.Reason = fmt.Errorf("%q (%dm) in %s: %w", task.Name, dur, w, ErrTaskUnplaceable)
			res.Warnings = append(res.Warnings, out.Reason)
		}
		res.Outcomes[idx] = out
	}

	for i := range timeline {
		timeline[i].StartLabel = FormatClock(timeline[i].Start)
		timeline[i].EndLabel = FormatClock(timeline[i].End)
	}
	res.Timeline = timeline
	return res
}

// findGap walks the gaps of a sorted timeline inside w and returns the start
// of the first one at least dur minutes long. The pointer only moves forward,
// so items ending before w.Start do not open gaps ahead of the window. Gaps
// are cut at w.End even when the next item starts later.
func findGap(timeline []TimelineItem, w Window, dur int) (int, bool) {
	pointer := w.Start
	for _, item := range timeline {
		if min(item.Start, w.End)-pointer >= dur {
			return pointer, true
		}
		pointer = max(pointer, item.End)
	}
	if w.End-pointer >= dur {
		return pointer, true
	}
	return 0, false
}

func sortTimeline(items []TimelineItem) {
	slices.SortStableFunc(items, func(a, b TimelineItem) int {
		return a.Start - b.Start
	})
}

// ClassSlot and MealSlot carry times as entered, "HH:MM".
type ClassSlot struct {
	Name  string
	Start string
	End   string
}

type MealSlot struct {
	Name string
	At   string
}

// Day is the raw input of a single schedule build.
type Day struct {
	Classes []ClassSlot
	Meals   []MealSlot
	Tasks   []Task
}

// FixedEvents converts the day's classes and meals to minute offsets.
// Malformed times fall back to midnight and are reported as warnings.
func (d Day) FixedEvents() ([]FixedEvent, []error) {
	var warnings []error
	parse := func(owner, field, s string) int {
		m, err := ParseClockStrict(s)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s %s: %w", owner, field, err))
		}
		return m
	}

	events := make([]FixedEvent, 0, len(d.Classes)+len(d.Meals))
	for _, c := range d.Classes {
		events = append(events, NewClass(c.Name, parse(c.Name, "start", c.Start), parse(c.Name, "end", c.End)))
	}
	for _, m := range d.Meals {
		events = append(events, NewMeal(m.Name, parse(m.Name, "time", m.At)))
	}
	return events, warnings
}

// Build schedules a day from its raw input. Invalid times and dropped tasks
// are collected in Result.Warnings; with opts.Strict they are also returned
// joined as the error. The result is complete in either case.
func Build(day Day, opts Options) (Result, error) {
	events, warnings := day.FixedEvents()
	res := Schedule(events, day.Tasks, opts)
	res.Warnings = append(warnings, res.Warnings...)
	if opts.Strict && len(res.Warnings) > 0 {
		return res, errors.Join(res.Warnings...)
	}
	return res, nil
}
