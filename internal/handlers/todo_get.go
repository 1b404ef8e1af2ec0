package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/services"
)

// TodoGetter defines the interface that the todo lookup service must implement.
type TodoGetter interface {
	Get(ctx context.Context, owner string, id uuid.UUID) (*models.TodoDB, error)
}

// NewTodoGetHandler returns an HTTP handler fetching one of the caller's todos.
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id"
// @Success 200 {object} handlers.TodoResponse "The todo"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Todo not found"
// @Router /todos/{id} [get]
func NewTodoGetHandler(svc TodoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}
		id, ok := todoIDFromRequest(w, r)
		if !ok {
			return
		}

		todo, err := svc.Get(r.Context(), owner, id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTodoNotFound):
				writeError(w, http.StatusNotFound, "todo not found")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to get todo")
			}
			return
		}

		writeJSON(w, http.StatusOK, newTodoResponse(todo))
	}
}
