package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) GetTask(id int64) (*Task, error) {
	t := &Task{}
	var completed int
	err := s.db.QueryRow(
		`SELECT id, day_key, name, duration, unit, priority, completed, position FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.DayKey, &t.Name, &t.Duration, &t.Unit, &t.Priority, &completed, &t.Position)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	t.Completed = completed == 1
	return t, nil
}

func (s *Store) ListTasks(dayKey string) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, day_key, name, duration, unit, priority, completed, position
		 FROM tasks WHERE day_key = ? ORDER BY position, id`, dayKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var completed int
		if err := rows.Scan(&t.ID, &t.DayKey, &t.Name, &t.Duration, &t.Unit, &t.Priority, &completed, &t.Position); err != nil {
			return nil, err
		}
		t.Completed = completed == 1
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SetTaskCompleted flips the completion flag of one task. Scheduling only
// reads the flag, so this never changes where the task is placed.
func (s *Store) SetTaskCompleted(id int64, done bool) error {
	res, err := s.db.Exec(`UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(done), id)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update task %d: %w", id, sql.ErrNoRows)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`UPDATE days SET updated_at = ? WHERE key = (SELECT day_key FROM tasks WHERE id = ?)`, now, id,
	)
	return err
}
