package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTodoRecord is returned when a stored todo document fails
// validation on read.
var ErrInvalidTodoRecord = errors.New("invalid todo record")

// TodoDB represents a todo record in the store, keyed by (owner, id).
// Timestamps are UTC; UpdatedAt never precedes CreatedAt.
type TodoDB struct {
	UserID      string    `json:"user_id"`
	TodoID      uuid.UUID `json:"todo_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the fixed shape of a todo document read from the store.
func (t *TodoDB) Validate() error {
	if t.UserID == "" || t.TodoID == uuid.Nil || t.Title == "" {
		return ErrInvalidTodoRecord
	}
	if t.CreatedAt.IsZero() || t.UpdatedAt.Before(t.CreatedAt) {
		return ErrInvalidTodoRecord
	}
	return nil
}

// TodoUpdate carries a partial update: nil fields keep their stored value.
type TodoUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
