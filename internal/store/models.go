package store

import (
	"time"

	"github.com/sadopc/zenith/internal/planner"
)

const (
	KindClass = "class"
	KindMeal  = "meal"
)

// dayKeyLayout matches the keys of the original weekly_timetable.json file,
// e.g. "Sunday 18-10-2026".
const dayKeyLayout = "Monday 02-01-2006"

type Day struct {
	Key       string
	Date      string // YYYY-MM-DD, empty if the key could not be parsed
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FixedEvent is a stored class or meal. Meals only use Start.
type FixedEvent struct {
	ID       int64
	DayKey   string
	Kind     string
	Name     string
	Start    string
	End      string
	Position int
}

type Task struct {
	ID        int64
	DayKey    string
	Name      string
	Duration  int
	Unit      string // "m" or "h"; "" only for unresolved legacy rows
	Priority  string
	Completed bool
	Position  int
}

// DayData is everything stored for one day.
type DayData struct {
	Day
	Classes []FixedEvent
	Meals   []FixedEvent
	Tasks   []Task
}

// Plan converts the stored day to builder input. Task order is preserved so
// TimelineItem.TaskIndex can be mapped back to d.Tasks.
func (d DayData) Plan() planner.Day {
	var day planner.Day
	for _, c := range d.Classes {
		day.Classes = append(day.Classes, planner.ClassSlot{Name: c.Name, Start: c.Start, End: c.End})
	}
	for _, m := range d.Meals {
		day.Meals = append(day.Meals, planner.MealSlot{Name: m.Name, At: m.Start})
	}
	for _, t := range d.Tasks {
		day.Tasks = append(day.Tasks, t.Plan())
	}
	return day
}

func (t Task) Plan() planner.Task {
	prio, _ := planner.ParsePriority(t.Priority)
	return planner.Task{
		Name:      t.Name,
		Duration:  t.Duration,
		Unit:      planner.DurationUnit(t.Unit),
		Priority:  prio,
		Completed: t.Completed,
	}
}

// DayKey formats t the way days are keyed in the store.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayKeyLayout, key)
}

type Setting struct {
	Key   string
	Value string
}
