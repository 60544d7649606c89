package service

import (
	"context"

	"github.com/avasilenko/smart-todo/internal/errs"
	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/avasilenko/smart-todo/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// defaultCategory is applied when the client omits the category field.
const defaultCategory = "General"

// TaskService defines operations over a user's tasks. The user ID is a
// mandatory first argument everywhere: no task can be reached without naming
// its owner.
type TaskService interface {
	// List returns the user's tasks, newest-created first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	// Create stores a new task owned by the user.
	Create(ctx context.Context, userID uuid.UUID, in model.NewTask) (*model.Task, error)
	// Update patches the user's task.
	Update(ctx context.Context, userID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error)
	// Delete removes the user's task.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

type TaskServiceImpl struct {
	repo repository.TaskRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(repo repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo}
}

// List delegates to the repository with the ownership filter applied.
func (s *TaskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrValidation
	}
	return s.repo.ListByUser(ctx, userID)
}

// Create validates input, stamps the owner, and stores the task.
func (s *TaskServiceImpl) Create(ctx context.Context, userID uuid.UUID, in model.NewTask) (*model.Task, error) {
	if userID == uuid.Nil || in.Text == "" {
		return nil, errs.ErrValidation
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	category := in.Category
	if category == "" {
		category = defaultCategory
	}
	t := &model.Task{
		ID:       id,
		UserID:   userID,
		Text:     in.Text,
		Category: category,
		DueDate:  in.DueDate,
		Priority: in.Priority,
		Location: in.Location,
		Notes:    in.Notes,
		Tags:     in.Tags,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update patches the user's task; a nonexistent id and someone else's id are
// the same ErrNotFound.
func (s *TaskServiceImpl) Update(ctx context.Context, userID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrValidation
	}
	return s.repo.Update(ctx, userID, taskID, patch)
}

// Delete removes the user's task under the same ownership-matching rule.
func (s *TaskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if userID == uuid.Nil {
		return errs.ErrValidation
	}
	return s.repo.Delete(ctx, userID, taskID)
}
