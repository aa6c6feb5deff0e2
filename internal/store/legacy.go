package store

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sadopc/zenith/internal/planner"
)

// The weekly_timetable.json layout written by the desktop release:
//
//	{"Monday 18-10-2026": {"tasks": [...], "classes": [...], "meals": {"Lunch": "13:00"}}}
type legacyDay struct {
	Tasks   []legacyTask      `json:"tasks"`
	Classes []legacyClass     `json:"classes"`
	Meals   map[string]string `json:"meals"`
}

type legacyTask struct {
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	Priority  string  `json:"priority"`
	Completed bool    `json:"completed"`
}

type legacyClass struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ImportLegacy reads a weekly_timetable.json document and saves every day in
// it, replacing days with the same key. Task durations are stored with an
// explicit unit resolved from their magnitude, so the hours/minutes guess is
// made once here and never again at schedule time.
func (s *Store) ImportLegacy(r io.Reader) (int, error) {
	var doc map[string]legacyDay
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode legacy timetable: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := s.SaveDay(convertLegacyDay(key, doc[key])); err != nil {
			return 0, fmt.Errorf("import %q: %w", key, err)
		}
	}
	return len(keys), nil
}

func convertLegacyDay(key string, ld legacyDay) DayData {
	d := DayData{Day: Day{Key: key}}
	if t, err := ParseDayKey(key); err == nil {
		d.Date = t.Format("2006-01-02")
	} else {
		log.Warn().Str("day", key).Msg("legacy day key has no parseable date")
	}

	for _, c := range ld.Classes {
		d.Classes = append(d.Classes, FixedEvent{Kind: KindClass, Name: c.Name, Start: c.Start, End: c.End})
	}

	// JSON objects carry no order; sort meals by time, then name.
	for name, at := range ld.Meals {
		d.Meals = append(d.Meals, FixedEvent{Kind: KindMeal, Name: name, Start: at})
	}
	sort.Slice(d.Meals, func(i, j int) bool {
		a, b := d.Meals[i], d.Meals[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Name < b.Name
	})

	for _, lt := range ld.Tasks {
		dur, unit := legacyDuration(lt.Duration)
		prio, err := planner.ParsePriority(lt.Priority)
		if err != nil {
			log.Warn().Str("day", key).Str("task", lt.Name).Str("priority", lt.Priority).
				Msg("unknown legacy priority, importing as Low")
		}
		d.Tasks = append(d.Tasks, Task{
			Name:      lt.Name,
			Duration:  dur,
			Unit:      string(unit),
			Priority:  prio.String(),
			Completed: lt.Completed,
		})
	}
	return d
}

// legacyDuration applies the hours/minutes guess to the raw value before any
// rounding. Fractional hours are stored as whole minutes.
func legacyDuration(d float64) (int, planner.DurationUnit) {
	if d < 10 && d != math.Trunc(d) {
		return int(math.Round(d * 60)), planner.UnitMinutes
	}
	if d < 10 {
		return int(d), planner.LegacyUnit(int(d))
	}
	return int(math.Round(d)), planner.UnitMinutes
}
