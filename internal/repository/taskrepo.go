package repository

import (
	"context"

	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TaskRepository provides per-user task storage. Every operation takes the
// owning user ID as its first argument; there is deliberately no way to reach
// a task without naming an owner, and a wrong owner is indistinguishable from
// a missing task.
type TaskRepository interface {
	// Create inserts the task as given (ID, owner and defaults already set).
	Create(ctx context.Context, t *model.Task) error
	// ListByUser returns the user's tasks, newest-created first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	// Update applies a partial patch to the user's task and returns the
	// updated row. Returns errs.ErrNotFound when no task matches both id
	// and owner.
	Update(ctx context.Context, userID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error)
	// Delete removes the user's task. Returns errs.ErrNotFound when no task
	// matches both id and owner.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}
