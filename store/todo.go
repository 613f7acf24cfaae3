package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fritzgwapo0907/to-do-server/models"
)

// ListOpenTitles returns all titles not yet marked done, in insertion order.
func (s *Store) ListOpenTitles(ctx context.Context) ([]models.Title, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, title, date_modified, status FROM titles WHERE status = false ORDER BY id`)
	if err != nil {
		return nil, fail("list open titles", err)
	}
	defer rows.Close()

	titles := make([]models.Title, 0)
	for rows.Next() {
		var t models.Title
		if err := rows.Scan(&t.ID, &t.Username, &t.Title, &t.DateModified, &t.Status); err != nil {
			return nil, fail("list open titles", err)
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("list open titles", err)
	}
	return titles, nil
}

// ListAllTasks returns every task row across all titles, in insertion order.
func (s *Store) ListAllTasks(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title_id, list_desc, status FROM lists ORDER BY id`)
	if err != nil {
		return nil, fail("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TitleID, &t.Desc, &t.Status); err != nil {
			return nil, fail("list tasks", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("list tasks", err)
	}
	return tasks, nil
}

// CreateTitleWithTasks inserts a new open title and one open task per entry
// in tasks, all in a single transaction. The title never becomes visible
// without its tasks.
func (s *Store) CreateTitleWithTasks(ctx context.Context, username, title string, tasks []string) (int64, error) {
	if len(tasks) == 0 {
		return 0, fmt.Errorf("%w: tasks must be a non-empty list", ErrInvalidInput)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fail("create title", err)
	}
	defer tx.Rollback()

	var titleID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO titles (username, title, date_modified, status) VALUES ($1, $2, $3, false) RETURNING id`,
		username, title, nowStamp()).Scan(&titleID)
	if err != nil {
		return 0, fail("create title", err)
	}

	for _, desc := range tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lists (title_id, list_desc, status) VALUES ($1, $2, false)`,
			titleID, desc); err != nil {
			return 0, fail("create title tasks", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fail("create title", err)
	}
	return titleID, nil
}

// ReplaceTitleTasks deletes the title's current tasks and inserts the given
// ones in their place, in one transaction. Replacement tasks are created
// with status=true and the title's date_modified drops to date-only
// precision; both quirks are inherited contract.
func (s *Store) ReplaceTitleTasks(ctx context.Context, titleID int64, tasks []string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("replace tasks", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE titles SET date_modified = $1 WHERE id = $2`, todayStamp(), titleID)
	if err != nil {
		return fail("replace tasks", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("replace tasks", err)
	} else if n == 0 {
		return fmt.Errorf("replace tasks: title %d: %w", titleID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE title_id = $1`, titleID); err != nil {
		return fail("replace tasks", err)
	}

	for _, desc := range tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lists (title_id, list_desc, status) VALUES ($1, $2, true)`,
			titleID, desc); err != nil {
			return fail("replace tasks", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fail("replace tasks", err)
	}
	return nil
}

// DeleteTitleCascade removes a title and all of its tasks in one
// transaction, children first so the foreign key can never trip. Deleting a
// title that does not exist is a no-op success.
func (s *Store) DeleteTitleCascade(ctx context.Context, titleID int64) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("delete title", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE title_id = $1`, titleID); err != nil {
		return fail("delete title", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM titles WHERE id = $1`, titleID); err != nil {
		return fail("delete title", err)
	}

	if err := tx.Commit(); err != nil {
		return fail("delete title", err)
	}
	return nil
}

// GetTitleWithTasks fetches a title and its tasks. A title with no tasks is
// a valid result with an empty slice; only a missing title row is
// ErrNotFound.
func (s *Store) GetTitleWithTasks(ctx context.Context, titleID int64) (models.Title, []models.Task, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var t models.Title
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, title, date_modified, status FROM titles WHERE id = $1`,
		titleID).Scan(&t.ID, &t.Username, &t.Title, &t.DateModified, &t.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Title{}, nil, fmt.Errorf("get title %d: %w", titleID, ErrNotFound)
	}
	if err != nil {
		return models.Title{}, nil, fail("get title", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title_id, list_desc, status FROM lists WHERE title_id = $1 ORDER BY id`, titleID)
	if err != nil {
		return models.Title{}, nil, fail("get title tasks", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.TitleID, &task.Desc, &task.Status); err != nil {
			return models.Title{}, nil, fail("get title tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return models.Title{}, nil, fail("get title tasks", err)
	}
	return t, tasks, nil
}

// UpdateTitleText rewrites the title text and status and refreshes
// date_modified with a full timestamp, returning the updated row.
func (s *Store) UpdateTitleText(ctx context.Context, titleID int64, title string, status bool) (models.Title, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var t models.Title
	err := s.db.QueryRowContext(ctx,
		`UPDATE titles SET title = $1, status = $2, date_modified = $3 WHERE id = $4
		 RETURNING id, username, title, date_modified, status`,
		title, status, nowStamp(), titleID).Scan(&t.ID, &t.Username, &t.Title, &t.DateModified, &t.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Title{}, fmt.Errorf("update title %d: %w", titleID, ErrNotFound)
	}
	if err != nil {
		return models.Title{}, fail("update title", err)
	}
	return t, nil
}

// SetTitleStatus flips a title's done flag. Marking a title done while it
// still has open tasks is rejected; the check and the update share one
// transaction so a concurrent task insert cannot slip between them.
func (s *Store) SetTitleStatus(ctx context.Context, titleID int64, status bool) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("set title status", err)
	}
	defer tx.Rollback()

	if status {
		var open int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM lists WHERE title_id = $1 AND status = false`, titleID).Scan(&open)
		if err != nil {
			return fail("set title status", err)
		}
		if open > 0 {
			return fmt.Errorf("%w: title %d still has %d open tasks", ErrInvalidInput, titleID, open)
		}
	}

	res, err := tx.ExecContext(ctx, `UPDATE titles SET status = $1 WHERE id = $2`, status, titleID)
	if err != nil {
		return fail("set title status", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("set title status", err)
	} else if n == 0 {
		return fmt.Errorf("set title status: title %d: %w", titleID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fail("set title status", err)
	}
	return nil
}

// AddTask inserts a single task under an existing title and returns its id.
func (s *Store) AddTask(ctx context.Context, titleID int64, desc string, status bool) (int64, error) {
	if titleID == 0 || strings.TrimSpace(desc) == "" {
		return 0, fmt.Errorf("%w: title id and description are required", ErrInvalidInput)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO lists (title_id, list_desc, status) VALUES ($1, $2, $3) RETURNING id`,
		titleID, desc, status).Scan(&id)
	if err != nil {
		return 0, fail("add task", err)
	}
	return id, nil
}

// UpdateTaskDescription rewrites a task's description, leaving its status
// untouched. Updating a missing task is a no-op success.
func (s *Store) UpdateTaskDescription(ctx context.Context, taskID int64, desc string) error {
	if taskID == 0 || strings.TrimSpace(desc) == "" {
		return fmt.Errorf("%w: task id and new description are required", ErrInvalidInput)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx,
		`UPDATE lists SET list_desc = $1 WHERE id = $2`, desc, taskID); err != nil {
		return fail("update task", err)
	}
	return nil
}

// SetTaskStatus flips a task's done flag.
func (s *Store) SetTaskStatus(ctx context.Context, taskID int64, status bool) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE lists SET status = $1 WHERE id = $2`, status, taskID)
	if err != nil {
		return fail("set task status", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("set task status", err)
	} else if n == 0 {
		return fmt.Errorf("set task status: task %d: %w", taskID, ErrNotFound)
	}
	return nil
}

// DeleteTasks removes every task whose id is in ids. Ids with no matching
// row are silently ignored.
func (s *Store) DeleteTasks(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: task ids are required", ErrInvalidInput)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`DELETE FROM lists WHERE id IN (%s)`, strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fail("delete tasks", err)
	}
	return nil
}
