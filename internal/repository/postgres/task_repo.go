package postgres

import (
	"context"
	"errors"

	"github.com/avasilenko/smart-todo/internal/errs"
	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// TaskRepo implements TaskRepository using PostgreSQL. Every statement filters
// by user_id, so ownership is enforced in the same atomic operation that
// reads or mutates the row.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = `id, user_id, text, category, is_completed, due_date, priority, location, notes, tags, created_at, completed_at`

// Create inserts a new task row and reads back the DB-assigned timestamps.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (id, user_id, text, category, due_date, priority, location, notes, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at, is_completed`
	row := r.db.Pool.QueryRow(ctx, q,
		t.ID, t.UserID, t.Text, t.Category, t.DueDate, t.Priority, t.Location, t.Notes, t.Tags)
	return row.Scan(&t.CreatedAt, &t.IsCompleted)
}

// ListByUser returns the user's tasks, newest-created first.
func (r *TaskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	const q = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id=$1
ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies a partial patch in a single statement. The id+owner match
// and the mutation happen atomically; zero matched rows means "not found"
// regardless of whether the id exists under another owner.
//
// completed_at is stamped whenever the patch sets is_completed true, and is
// intentionally left untouched when it sets it false.
func (r *TaskRepo) Update(ctx context.Context, userID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	const q = `
UPDATE tasks SET
	text         = COALESCE($3, text),
	category     = COALESCE($4, category),
	is_completed = COALESCE($5, is_completed),
	due_date     = COALESCE($6, due_date),
	priority     = COALESCE($7, priority),
	location     = COALESCE($8, location),
	notes        = COALESCE($9, notes),
	tags         = COALESCE($10, tags),
	completed_at = CASE WHEN $5 THEN now() ELSE completed_at END
WHERE id=$1 AND user_id=$2
RETURNING ` + taskColumns
	row := r.db.Pool.QueryRow(ctx, q, taskID, userID,
		patch.Text, patch.Category, patch.IsCompleted, patch.DueDate,
		patch.Priority, patch.Location, patch.Notes, patch.Tags)
	var t model.Task
	if err := scanTask(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes the user's task. Zero affected rows means "not found".
func (r *TaskRepo) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	const q = `DELETE FROM tasks WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, taskID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row, t *model.Task) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.Text, &t.Category, &t.IsCompleted,
		&t.DueDate, &t.Priority, &t.Location, &t.Notes, &t.Tags,
		&t.CreatedAt, &t.CompletedAt,
	)
}
