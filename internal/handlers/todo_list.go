package handlers

import (
	"context"
	"net/http"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
)

// TodoLister defines the interface that the todo listing service must implement.
type TodoLister interface {
	List(ctx context.Context, owner string) ([]models.TodoDB, error)
}

// NewTodoListHandler returns an HTTP handler listing the caller's todos.
// @Summary List todos
// @Description Returns every todo owned by the authenticated user.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.TodoResponse "Caller's todos"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /todos [get]
func NewTodoListHandler(svc TodoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		todos, err := svc.List(r.Context(), owner)
		if err != nil {
			logger.Log.Errorw("internal server error", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list todos")
			return
		}

		resp := make([]TodoResponse, 0, len(todos))
		for i := range todos {
			resp = append(resp, newTodoResponse(&todos[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
