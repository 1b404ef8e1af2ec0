package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/services"
)

func TestTodoGetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTodoGetter(ctrl)

	r := chi.NewRouter()
	r.Get("/todos/{id}", NewTodoGetHandler(mockSvc))

	id := uuid.New()
	now := time.Now().UTC()
	todo := &models.TodoDB{
		UserID:    "alice",
		TodoID:    id,
		Title:     "buy milk",
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), "alice", id).
			Return(todo, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodGet, "/todos/"+id.String(), "alice", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp TodoResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "buy milk", resp.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), "alice", id).
			Return(nil, services.ErrTodoNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodGet, "/todos/"+id.String(), "alice", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "todo not found", resp.Detail)
	})

	t.Run("invalid id reports not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodGet, "/todos/not-a-uuid", "alice", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodGet, "/todos/"+id.String(), "", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
