package tui

import (
	"fmt"
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

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dayStart      *string
	dayEnd        *string
	mealBreakfast *string
	mealLunch     *string
	mealDinner    *string
	strict        *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	ds, de, mb, ml, md := "", "", "", "", ""
	strict := false
	return settingsModel{
		store:         s,
		dayStart:      &ds,
		dayEnd:        &de,
		mealBreakfast: &mb,
		mealLunch:     &ml,
		mealDinner:    &md,
		strict:        &strict,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			log.Error().Err(err).Msg("list settings")
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

// validateOptionalClock accepts an empty value, which disables a default meal.
func validateOptionalClock(v string) error {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return validateClock(v)
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.dayStart = s.getVal("day_start", "08:00")
	*s.dayEnd = s.getVal("day_end", "23:00")
	*s.mealBreakfast = s.getVal("meal_breakfast", "09:00")
	*s.mealLunch = s.getVal("meal_lunch", "13:00")
	*s.mealDinner = s.getVal("meal_dinner", "20:00")
	*s.strict = s.store.Strict()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Day starts (HH:MM)").Value(s.dayStart).Validate(validateClock),
			huh.NewInput().Title("Day ends (HH:MM)").Value(s.dayEnd).Validate(validateClock),
			huh.NewConfirm().Title("Strict mode").
				Description("Report unplaceable tasks and bad times as errors").
				Affirmative("On").Negative("Off").Value(s.strict),
		).Title("Schedule"),
		huh.NewGroup(
			huh.NewInput().Title("Breakfast (empty to skip)").Value(s.mealBreakfast).Validate(validateOptionalClock),
			huh.NewInput().Title("Lunch (empty to skip)").Value(s.mealLunch).Validate(validateOptionalClock),
			huh.NewInput().Title("Dinner (empty to skip)").Value(s.mealDinner).Validate(validateOptionalClock),
		).Title("Default meals"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveSettings(); err != nil {
			return s, errorCmd("Settings not saved", err)
		}
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return reloadMsg{} },
			statusCmd("Settings saved"),
		)
	}

	return s, cmd
}

// saveSettings rejects an empty or inverted window before writing anything.
func (s settingsModel) saveSettings() error {
	if _, err := planner.ParseWindow(*s.dayStart, *s.dayEnd); err != nil {
		return err
	}

	values := []store.Setting{
		{Key: "day_start", Value: *s.dayStart},
		{Key: "day_end", Value: *s.dayEnd},
		{Key: "meal_breakfast", Value: strings.TrimSpace(*s.mealBreakfast)},
		{Key: "meal_lunch", Value: strings.TrimSpace(*s.mealLunch)},
		{Key: "meal_dinner", Value: strings.TrimSpace(*s.mealDinner)},
		{Key: "strict", Value: strconv.FormatBool(*s.strict)},
	}
	for _, v := range values {
		if err := s.store.SetSetting(v.Key, v.Value); err != nil {
			return fmt.Errorf("set %s: %w", v.Key, err)
		}
	}
	log.Info().Str("window", *s.dayStart+"-"+*s.dayEnd).Bool("strict", *s.strict).Msg("settings saved")
	return nil
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

var settingLabels = map[string]string{
	"day_start":      "Day starts",
	"day_end":        "Day ends",
	"meal_breakfast": "Breakfast",
	"meal_lunch":     "Lunch",
	"meal_dinner":    "Dinner",
	"strict":         "Strict mode",
}

func settingLabel(k string) string {
	if l, ok := settingLabels[k]; ok {
		return l
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case "strict":
		if b, err := strconv.ParseBool(v); err == nil && b {
			return "on"
		}
		return "off"
	case "meal_breakfast", "meal_lunch", "meal_dinner":
		if v == "" {
			return "skipped"
		}
	}
	return v
}
