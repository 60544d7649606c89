// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/avasilenko/smart-todo/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides account storage. Usernames are unique; the backend's
// uniqueness constraint is the final arbiter when two registrations race.
type UserRepository interface {
	// Create inserts a new user. Returns errs.ErrAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, u *model.User) error
	// GetByUsername loads a user by username (case-sensitive exact match).
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
