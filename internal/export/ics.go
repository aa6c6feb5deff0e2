package export

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sadopc/zenith/internal/planner"
)

const productID = "-//zenith//day planner//EN"

// ToICS writes the timeline as an iCalendar file, one VEVENT per item.
// Item minutes are offsets from midnight of day in day's location.
func ToICS(day time.Time, items []planner.TimelineItem, path string) error {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	stamp := time.Now().UTC()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for i, it := range items {
		ev := cal.AddEvent(fmt.Sprintf("%s-%02d@zenith", midnight.Format("20060102"), i))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(midnight.Add(time.Duration(it.Start) * time.Minute))
		ev.SetEndAt(midnight.Add(time.Duration(it.End) * time.Minute))
		ev.SetSummary(it.Name)
		ev.SetProperty(ical.ComponentPropertyCategories, string(it.Category))
		if it.Category == planner.CategoryTask {
			status := "open"
			if it.Completed {
				status = "done"
			}
			ev.SetDescription(fmt.Sprintf("Task (%s), %s", formatMinutes(it.Duration), status))
		}
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write ics file: %w", err)
	}
	return nil
}
