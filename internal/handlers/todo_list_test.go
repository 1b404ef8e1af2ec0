package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avorobev/todo-service/internal/middlewares"
	"github.com/avorobev/todo-service/internal/models"
)

// authedRequest builds a request carrying an authenticated subject, the way
// the auth middleware leaves it for handlers.
func authedRequest(method, target, owner string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if owner != "" {
		req = req.WithContext(middlewares.NewContextWithSubject(req.Context(), owner))
	}
	return req
}

func TestTodoListHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTodoLister(ctrl)
	handler := NewTodoListHandler(mockSvc)

	now := time.Now().UTC()
	todo := models.TodoDB{
		UserID:    "alice",
		TodoID:    uuid.New(),
		Title:     "buy milk",
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.EXPECT().
			List(gomock.Any(), "alice").
			Return([]models.TodoDB{todo}, nil)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/todos", "alice", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []TodoResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, todo.TodoID, resp[0].ID)
		assert.Equal(t, "buy milk", resp[0].Title)
		assert.False(t, resp[0].Completed)
	})

	t.Run("empty list is an array, not null", func(t *testing.T) {
		mockSvc.EXPECT().
			List(gomock.Any(), "alice").
			Return([]models.TodoDB{}, nil)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/todos", "alice", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/todos", "", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.EXPECT().
			List(gomock.Any(), "alice").
			Return(nil, errors.New("store unreachable"))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest(http.MethodGet, "/todos", "alice", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
