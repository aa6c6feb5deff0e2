package planner

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryClass Category = "Class"
	CategoryMeal  Category = "Meal"
	CategoryTask  Category = "Task"
	CategoryFree  Category = "Free"
)

// Categories lists the buckets reported by CategoryTotals, in display order.
var Categories = []Category{CategoryClass, CategoryTask, CategoryMeal, CategoryFree}

type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

var priorityNames = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

func (p Priority) String() string {
	if s, ok := priorityNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// rank orders tasks for placement. Unknown values sort with Low.
func (p Priority) rank() int {
	if p < PriorityHigh || p > PriorityLow {
		return int(PriorityLow)
	}
	return int(p)
}

// Weight is the contribution of a task to the day's mood score.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// ParsePriority accepts "High", "Medium" or "Low" in any case.
func ParsePriority(s string) (Priority, error) {
	for p, name := range priorityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return p, nil
		}
	}
	return PriorityLow, fmt.Errorf("unknown priority %q", s)
}

// DurationUnit tags how Task.Duration is expressed.
type DurationUnit string

const (
	// UnitLegacy infers the unit from the magnitude: values below
	// legacyHoursThreshold are hours, anything else minutes.
	UnitLegacy  DurationUnit = ""
	UnitMinutes DurationUnit = "m"
	UnitHours   DurationUnit = "h"
)

const legacyHoursThreshold = 10

// LegacyUnit resolves the unit a legacy duration was most likely written in.
func LegacyUnit(duration int) DurationUnit {
	if duration < legacyHoursThreshold {
		return UnitHours
	}
	return UnitMinutes
}

// ParseUnit accepts "m"/"min"/"minutes", "h"/"hours" and "" for legacy.
func ParseUnit(s string) (DurationUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return UnitLegacy, nil
	case "m", "min", "mins", "minutes":
		return UnitMinutes, nil
	case "h", "hr", "hrs", "hours":
		return UnitHours, nil
	}
	return UnitLegacy, fmt.Errorf("unknown duration unit %q", s)
}

type Task struct {
	Name      string
	Duration  int
	Unit      DurationUnit
	Priority  Priority
	Completed bool
}

// Minutes returns the task duration in minutes.
func (t Task) Minutes() int {
	unit := t.Unit
	if unit == UnitLegacy {
		unit = LegacyUnit(t.Duration)
	}
	if unit == UnitHours {
		return t.Duration * 60
	}
	return t.Duration
}

// FixedEvent is a class or meal with a predetermined slot.
type FixedEvent struct {
	Name     string
	Category Category
	Start    int
	End      int
}

// MealDuration is the fixed length of every meal.
const MealDuration = 45

func NewClass(name string, start, end int) FixedEvent {
	return FixedEvent{Name: name, Category: CategoryClass, Start: start, End: end}
}

func NewMeal(name string, start int) FixedEvent {
	return FixedEvent{Name: name, Category: CategoryMeal, Start: start, End: start + MealDuration}
}

// TimelineItem is one entry of a built schedule. TaskIndex points into the
// task list passed to the builder and is -1 for fixed events.
type TimelineItem struct {
	Name       string
	Category   Category
	Start      int
	End        int
	Duration   int
	Completed  bool
	TaskIndex  int
	StartLabel string
	EndLabel   string
}

// Window is the active part of the day that tasks may be placed in.
type Window struct {
	Start int
	End   int
}

// DefaultWindow is 08:00 to 23:00.
var DefaultWindow = Window{Start: 8 * 60, End: 23 * 60}

// Minutes is the length of the window, never negative.
func (w Window) Minutes() int {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start
}

func (w Window) String() string {
	return FormatClock(w.Start) + "-" + FormatClock(w.End)
}

// ParseWindow builds a window from two "HH:MM" strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClockStrict(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ParseClockStrict(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	if e <= s {
		return Window{}, fmt.Errorf("window %s-%s ends before it starts", start, end)
	}
	return Window{Start: s, End: e}, nil
}
