package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/services"
)

// TodoDeleter defines the interface that the todo deletion service must implement.
type TodoDeleter interface {
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}

// TodoDeleteResponse represents a successful deletion response
// swagger:model TodoDeleteResponse
type TodoDeleteResponse struct {
	// Success message
	// example: Todo deleted successfully
	Message string `json:"message"`
}

// NewTodoDeleteHandler returns an HTTP handler deleting one of the caller's todos.
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id"
// @Success 200 {object} handlers.TodoDeleteResponse "Todo deleted"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Router /todos/{id} [delete]
func NewTodoDeleteHandler(svc TodoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		id, ok := todoIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), owner, id); err != nil {
			switch {
			case errors.Is(err, services.ErrTodoNotFound):
				writeError(w, http.StatusNotFound, "todo not found")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to delete todo")
			}
			return
		}

		writeJSON(w, http.StatusOK, TodoDeleteResponse{
			Message: "Todo deleted successfully",
		})
	}
}
