package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/sadopc/zenith/internal/planner"
	"github.com/sadopc/zenith/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimeline viewState = iota
	viewEditor
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Timeline", "Editor", "Analytics", "Settings"}

// --- Messages ---

// planLoadedMsg carries a freshly built schedule for one day. Every view that
// shows the day receives it.
type planLoadedMsg struct {
	plan dayPlan
}

// dayShiftMsg moves the viewed day by days. Zero jumps back to today.
type dayShiftMsg struct {
	days int
}

// reloadMsg asks the app to rebuild the current day's schedule.
type reloadMsg struct{}

type daySavedMsg struct {
	key string
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Day plan ---

type dayPlan struct {
	date   time.Time
	key    string
	data   *store.DayData // nil when nothing is stored for the day
	meals  []store.FixedEvent
	window planner.Window

	result  planner.Result
	summary planner.Summary
	err     error // set in strict mode when the schedule has warnings
}

// task returns the stored task behind a timeline item, if it is one.
func (p dayPlan) task(item planner.TimelineItem) (store.Task, bool) {
	if p.data == nil || item.Category != planner.CategoryTask {
		return store.Task{}, false
	}
	if item.TaskIndex < 0 || item.TaskIndex >= len(p.data.Tasks) {
		return store.Task{}, false
	}
	return p.data.Tasks[item.TaskIndex], true
}

func loadPlan(s *store.Store, date time.Time) tea.Cmd {
	return func() tea.Msg {
		plan, err := buildPlan(s, date)
		if err != nil {
			log.Error().Err(err).Str("day", store.DayKey(date)).Msg("load day")
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return planLoadedMsg{plan: plan}
	}
}

func buildPlan(s *store.Store, date time.Time) (dayPlan, error) {
	key := store.DayKey(date)
	plan := dayPlan{date: date, key: key}

	data, err := s.LoadDay(key)
	if err != nil {
		return plan, err
	}
	plan.data = data

	opts, err := s.PlannerOptions()
	if err != nil {
		log.Warn().Err(err).Msg("invalid day window setting, using default")
		opts = planner.Options{Window: planner.DefaultWindow, Strict: s.Strict()}
	}
	plan.window = opts.Window

	meals, err := s.DefaultMeals()
	if err != nil {
		return plan, err
	}
	plan.meals = meals

	var day planner.Day
	if data != nil {
		day = data.Plan()
	}
	plan.result, plan.err = planner.Build(day, opts)
	for _, w := range plan.result.Warnings {
		log.Warn().Str("day", key).Err(w).Msg("schedule warning")
	}
	plan.summary = planner.Summarize(plan.result, day.Tasks, opts.Window)
	return plan, nil
}

// --- Helpers ---

// formatMinutes renders a minute count as "Xh Ym".
func formatMinutes(m int) string {
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

func errorCmd(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		log.Error().Err(err).Msg(prefix)
		return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
	}
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
