package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/zenith/internal/planner"
)

func ToCSV(items []planner.TimelineItem, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Start", "End", "Name", "Category", "Duration (m)", "Duration", "Completed"}); err != nil {
		return err
	}

	for _, it := range items {
		completed := ""
		if it.Category == planner.CategoryTask {
			completed = strconv.FormatBool(it.Completed)
		}
		row := []string{
			it.StartLabel,
			it.EndLabel,
			it.Name,
			string(it.Category),
			strconv.Itoa(it.Duration),
			formatMinutes(it.Duration),
			completed,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// formatMinutes renders a duration as "1h 30m".
func formatMinutes(mins int) string {
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
