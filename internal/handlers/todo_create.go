package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/services"
)

// TodoCreator defines the interface that the todo creation service must implement.
type TodoCreator interface {
	Create(ctx context.Context, owner, title, description string) (*models.TodoDB, error)
}

// TodoCreateRequest represents the JSON body for creating a todo
// swagger:model TodoCreateRequest
type TodoCreateRequest struct {
	// Todo title
	// required: true
	// example: buy milk
	Title string `json:"title"`

	// Optional description
	Description string `json:"description"`
}

// NewTodoCreateHandler returns an HTTP handler creating a todo for the caller.
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param todoCreateRequest body handlers.TodoCreateRequest true "Todo to create"
// @Success 200 {object} handlers.TodoResponse "Created todo"
// @Failure 400 {object} handlers.ErrorResponse "Missing title / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /todos [post]
func NewTodoCreateHandler(svc TodoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFromRequest(w, r)
		if !ok {
			return
		}

		var req TodoCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		todo, err := svc.Create(r.Context(), owner, req.Title, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyTitle):
				writeError(w, http.StatusBadRequest, "title is required")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to create todo")
			}
			return
		}

		writeJSON(w, http.StatusOK, newTodoResponse(todo))
	}
}
