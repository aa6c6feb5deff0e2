package planner

// LegacyActiveDayMinutes is the 14 hour budget older releases used for the
// Free bucket regardless of the placement window. New callers pass
// Window.Minutes instead.
const LegacyActiveDayMinutes = 14 * 60

// CategoryTotals sums item durations per category. Free is whatever is left
// of budget after every item, floored at zero.
func CategoryTotals(timeline []TimelineItem, budget int) map[Category]int {
	totals := map[Category]int{
		CategoryClass: 0,
		CategoryTask:  0,
		CategoryMeal:  0,
		CategoryFree:  0,
	}
	occupied := 0
	for _, item := range timeline {
		totals[item.Category] += item.Duration
		occupied += item.Duration
	}
	totals[CategoryFree] = max(0, budget-occupied)
	return totals
}

// CompletionRatio counts completed task items against all task items.
func CompletionRatio(timeline []TimelineItem) (done, total int) {
	for _, item := range timeline {
		if item.Category != CategoryTask {
			continue
		}
		total++
		if item.Completed {
			done++
		}
	}
	return done, total
}

type Mood int

const (
	MoodChill Mood = iota
	MoodBalanced
	MoodIntense
)

func (m Mood) String() string {
	switch m {
	case MoodIntense:
		return "Intense"
	case MoodBalanced:
		return "Balanced"
	default:
		return "Chill"
	}
}

// DayMood scores every task, placed or not, by priority weight.
func DayMood(tasks []Task) Mood {
	score := 0
	for _, t := range tasks {
		score += t.Priority.Weight()
	}
	switch {
	case score >= 12:
		return MoodIntense
	case score >= 6:
		return MoodBalanced
	default:
		return MoodChill
	}
}

// Summary bundles the figures shown next to a timeline.
type Summary struct {
	TotalEvents int
	TasksDone   int
	TasksTotal  int
	Mood        Mood
	Totals      map[Category]int
	Unscheduled []string
}

func Summarize(res Result, tasks []Task, w Window) Summary {
	done, total := CompletionRatio(res.Timeline)
	s := Summary{
		TotalEvents: len(res.Timeline),
		TasksDone:   done,
		TasksTotal:  total,
		Mood:        DayMood(tasks),
		Totals:      CategoryTotals(res.Timeline, w.Minutes()),
	}
	for _, o := range res.Dropped() {
		s.Unscheduled = append(s.Unscheduled, o.Name)
	}
	return s
}
