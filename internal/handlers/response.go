package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/models"
)

// ErrorResponse is the uniform error body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Human-readable error description
	// example: todo not found
	Detail string `json:"detail"`
}

// TodoResponse is the public JSON shape of a todo item
// swagger:model TodoResponse
type TodoResponse struct {
	// Unique todo identifier
	ID uuid.UUID `json:"id"`
	// Todo title
	// example: buy milk
	Title string `json:"title"`
	// Optional description
	Description string `json:"description"`
	// Completion status
	Completed bool `json:"completed"`
	// Creation timestamp, ISO-8601 UTC
	CreatedAt time.Time `json:"created_at"`
	// Last update timestamp, ISO-8601 UTC
	UpdatedAt time.Time `json:"updated_at"`
}

// newTodoResponse maps a stored todo to its public shape.
func newTodoResponse(todo *models.TodoDB) TodoResponse {
	return TodoResponse{
		ID:          todo.TodoID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes the uniform error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}
