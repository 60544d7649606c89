// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account. The password is stored only as a one-way hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"` // unique
	PwdHash   []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is a single todo record owned by exactly one user. The owner is set
// at creation and never reassigned.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Text        string     `json:"text"`
	Category    string     `json:"category"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Tags        *string    `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewTask carries the client-supplied fields for task creation.
// Text is the only required field; Category falls back to "General".
type NewTask struct {
	Text     string     `json:"text"`
	Category string     `json:"category"`
	DueDate  *time.Time `json:"dueDate"`
	Priority *int       `json:"priority"`
	Location *string    `json:"location"`
	Notes    *string    `json:"notes"`
	Tags     *string    `json:"tags"`
}

// TaskPatch is a partial update. Nil fields are left unchanged.
//
// Setting IsCompleted to true stamps CompletedAt; setting it back to false
// leaves any previous CompletedAt in place (matching the behavior clients
// already depend on).
type TaskPatch struct {
	Text        *string    `json:"text"`
	Category    *string    `json:"category"`
	IsCompleted *bool      `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *int       `json:"priority"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
	Tags        *string    `json:"tags"`
}
