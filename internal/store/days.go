package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadDay returns the stored data for key, or nil if nothing was saved.
func (s *Store) LoadDay(key string) (*DayData, error) {
	d := &DayData{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT key, date, created_at, updated_at FROM days WHERE key = ?`, key,
	).Scan(&d.Key, &d.Date, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load day %q: %w", key, err)
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	events, err := s.listEvents(key)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if e.Kind == KindMeal {
			d.Meals = append(d.Meals, e)
		} else {
			d.Classes = append(d.Classes, e)
		}
	}

	d.Tasks, err = s.ListTasks(key)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) listEvents(dayKey string) ([]FixedEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, day_key, kind, name, start_at, end_at, position
		 FROM fixed_events WHERE day_key = ? ORDER BY position, id`, dayKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []FixedEvent
	for rows.Next() {
		var e FixedEvent
		if err := rows.Scan(&e.ID, &e.DayKey, &e.Kind, &e.Name, &e.Start, &e.End, &e.Position); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SaveDay replaces everything stored for d.Key with d and returns the stored
// copy with fresh IDs.
func (s *Store) SaveDay(d DayData) (*DayData, error) {
	if d.Key == "" {
		return nil, errors.New("save day: empty key")
	}
	if d.Date == "" {
		if t, err := ParseDayKey(d.Key); err == nil {
			d.Date = t.Format("2006-01-02")
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin save day: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(
		`INSERT INTO days (key, date, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET date = excluded.date, updated_at = excluded.updated_at`,
		d.Key, d.Date, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert day: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM fixed_events WHERE day_key = ?`, d.Key); err != nil {
		return nil, fmt.Errorf("clear events: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks WHERE day_key = ?`, d.Key); err != nil {
		return nil, fmt.Errorf("clear tasks: %w", err)
	}

	pos := 0
	insertEvent := func(kind string, e FixedEvent) error {
		_, err := tx.Exec(
			`INSERT INTO fixed_events (day_key, kind, name, start_at, end_at, position) VALUES (?, ?, ?, ?, ?, ?)`,
			d.Key, kind, e.Name, e.Start, e.End, pos,
		)
		pos++
		if err != nil {
			return fmt.Errorf("insert %s %q: %w", kind, e.Name, err)
		}
		return nil
	}
	for _, c := range d.Classes {
		if err := insertEvent(KindClass, c); err != nil {
			return nil, err
		}
	}
	for _, m := range d.Meals {
		if err := insertEvent(KindMeal, m); err != nil {
			return nil, err
		}
	}

	for i, t := range d.Tasks {
		_, err := tx.Exec(
			`INSERT INTO tasks (day_key, name, duration, unit, priority, completed, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.Key, t.Name, t.Duration, t.Unit, t.Priority, boolToInt(t.Completed), i,
		)
		if err != nil {
			return nil, fmt.Errorf("insert task %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save day: %w", err)
	}
	return s.LoadDay(d.Key)
}

func (s *Store) DeleteDay(key string) error {
	_, err := s.db.Exec(`DELETE FROM days WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete day %q: %w", key, err)
	}
	return nil
}

// ListDays returns every stored day, oldest first.
func (s *Store) ListDays() ([]Day, error) {
	rows, err := s.db.Query(`SELECT key, date, created_at, updated_at FROM days ORDER BY date, key`)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var days []Day
	for rows.Next() {
		var d Day
		var createdAt, updatedAt string
		if err := rows.Scan(&d.Key, &d.Date, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		days = append(days, d)
	}
	return days, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
