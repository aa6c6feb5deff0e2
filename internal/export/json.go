package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/zenith/internal/planner"
)

type jsonExport struct {
	ExportedAt  string        `json:"exported_at"`
	Day         string        `json:"day"`
	Count       int           `json:"count"`
	Timeline    []jsonItem    `json:"timeline"`
	Unscheduled []jsonDropped `json:"unscheduled,omitempty"`
	Summary     jsonSummary   `json:"summary"`
}

type jsonItem struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Duration  int    `json:"duration_minutes"`
	Completed *bool  `json:"completed,omitempty"`
}

type jsonDropped struct {
	Name     string `json:"name"`
	Duration int    `json:"duration_minutes"`
	Reason   string `json:"reason"`
}

type jsonSummary struct {
	TotalEvents int            `json:"total_events"`
	TasksDone   int            `json:"tasks_done"`
	TasksTotal  int            `json:"tasks_total"`
	Mood        string         `json:"mood"`
	Minutes     map[string]int `json:"minutes_by_category"`
}

func ToJSON(dayKey string, res planner.Result, sum planner.Summary, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Day:        dayKey,
		Count:      len(res.Timeline),
		Summary: jsonSummary{
			TotalEvents: sum.TotalEvents,
			TasksDone:   sum.TasksDone,
			TasksTotal:  sum.TasksTotal,
			Mood:        sum.Mood.String(),
			Minutes:     make(map[string]int, len(sum.Totals)),
		},
	}

	for _, it := range res.Timeline {
		item := jsonItem{
			Name:     it.Name,
			Category: string(it.Category),
			Start:    it.StartLabel,
			End:      it.EndLabel,
			Duration: it.Duration,
		}
		if it.Category == planner.CategoryTask {
			done := it.Completed
			item.Completed = &done
		}
		export.Timeline = append(export.Timeline, item)
	}

	for _, o := range res.Dropped() {
		reason := ""
		if o.Reason != nil {
			reason = o.Reason.Error()
		}
		export.Unscheduled = append(export.Unscheduled, jsonDropped{
			Name:     o.Name,
			Duration: o.Duration,
			Reason:   reason,
		})
	}

	for cat, mins := range sum.Totals {
		export.Summary.Minutes[string(cat)] = mins
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
