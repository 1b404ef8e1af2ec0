package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo mutation event actions.
const (
	TodoCreated = "created"
	TodoUpdated = "updated"
	TodoDeleted = "deleted"
)

// TodoEvent describes a todo mutation published to the event stream.
type TodoEvent struct {
	Action string    `json:"action"`
	UserID string    `json:"user_id"`
	TodoID uuid.UUID `json:"todo_id"`
	At     time.Time `json:"at"`
}
