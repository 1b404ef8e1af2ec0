package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/services"
)

// TodoUpdater defines the interface that the todo update service must implement.
type TodoUpdater interface {
	Update(ctx context.Context, owner string, id uuid.UUID, patch models.TodoUpdate) (*models.TodoDB, error)
}

// NewTodoUpdateHandler returns an HTTP handler applying a partial update to
// one of the caller's todos. Fields absent from the body keep their value.
// @Summary Update a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id"
// @Param todoUpdate body models.TodoUpdate true "Fields to update"
// @Success 200 {object} handlers.TodoResponse "Updated todo"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Router /todos/{id} [put]
func NewTodoUpdateHandler(svc TodoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		id, ok := todoIDFromRequest(w, r)
		if !ok {
			return
		}

		var patch models.TodoUpdate
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		todo, err := svc.Update(r.Context(), owner, id, patch)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTodoNotFound):
				writeError(w, http.StatusNotFound, "todo not found")
			case errors.Is(err, services.ErrEmptyTitle):
				writeError(w, http.StatusBadRequest, "title must not be empty")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to update todo")
			}
			return
		}

		writeJSON(w, http.StatusOK, newTodoResponse(todo))
	}
}
