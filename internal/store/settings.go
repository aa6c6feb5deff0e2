package store

import (
	"fmt"
	"strconv"

	"github.com/sadopc/zenith/internal/planner"
)

// mealSettings maps setting keys to the default meal names, in day order.
var mealSettings = []struct {
	key  string
	name string
}{
	{"meal_breakfast", "Breakfast"},
	{"meal_lunch", "Lunch"},
	{"meal_dinner", "Dinner"},
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Window is the active-day window used for both placement and free time.
func (s *Store) Window() (planner.Window, error) {
	start, err := s.GetSetting("day_start")
	if err != nil {
		return planner.Window{}, err
	}
	end, err := s.GetSetting("day_end")
	if err != nil {
		return planner.Window{}, err
	}
	return planner.ParseWindow(start, end)
}

// DefaultMeals returns the meals a new day starts with. Meals whose setting
// is empty are skipped.
func (s *Store) DefaultMeals() ([]FixedEvent, error) {
	var meals []FixedEvent
	for _, m := range mealSettings {
		at, err := s.GetSetting(m.key)
		if err != nil {
			return nil, err
		}
		if at == "" {
			continue
		}
		meals = append(meals, FixedEvent{Kind: KindMeal, Name: m.name, Start: at})
	}
	return meals, nil
}

// Strict reports whether schedule warnings should be treated as errors.
func (s *Store) Strict() bool {
	v, err := s.GetSetting("strict")
	if err != nil {
		return false
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// PlannerOptions bundles the stored window and strict flag.
func (s *Store) PlannerOptions() (planner.Options, error) {
	w, err := s.Window()
	if err != nil {
		return planner.Options{}, err
	}
	return planner.Options{Window: w, Strict: s.Strict()}, nil
}
