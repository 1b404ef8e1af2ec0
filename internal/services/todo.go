package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
)

// Error variables
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrEmptyTitle   = errors.New("title is required")
)

// TodoReader defines read-only operations for todos.
type TodoReader interface {
	Get(ctx context.Context, owner string, id uuid.UUID) (*models.TodoDB, error)
	List(ctx context.Context, owner string) ([]models.TodoDB, error)
}

// TodoWriter defines write operations for todos.
type TodoWriter interface {
	Save(ctx context.Context, todo *models.TodoDB) error
	Delete(ctx context.Context, owner string, id uuid.UUID) (bool, error)
}

// TodoEventPublisher publishes todo mutation events.
type TodoEventPublisher interface {
	Publish(ctx context.Context, event models.TodoEvent) error
}

// TodoService implements todo CRUD scoped to a single owner. The owner is
// always the authenticated subject passed in by the handler, never a value
// taken from the request body.
type TodoService struct {
	reader    TodoReader
	writer    TodoWriter
	publisher TodoEventPublisher
}

// NewTodoService creates a new TodoService. The publisher may be nil, in
// which case mutation events are not emitted.
func NewTodoService(reader TodoReader, writer TodoWriter, publisher TodoEventPublisher) *TodoService {
	return &TodoService{
		reader:    reader,
		writer:    writer,
		publisher: publisher,
	}
}

// List returns all todos of the owner. Never returns a nil slice.
func (svc *TodoService) List(ctx context.Context, owner string) ([]models.TodoDB, error) {
	todos, err := svc.reader.List(ctx, owner)
	if err != nil {
		logger.Log.Errorw("failed to list todos", "owner", owner, "error", err)
		return nil, err
	}
	if todos == nil {
		todos = []models.TodoDB{}
	}
	return todos, nil
}

// Create stores a new todo for the owner with a fresh id.
func (svc *TodoService) Create(ctx context.Context, owner, title, description string) (*models.TodoDB, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now().UTC()
	todo := &models.TodoDB{
		UserID:      owner,
		TodoID:      uuid.New(),
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := svc.writer.Save(ctx, todo); err != nil {
		logger.Log.Errorw("failed to save todo", "owner", owner, "error", err)
		return nil, err
	}

	svc.publish(ctx, models.TodoCreated, todo)
	return todo, nil
}

// Get returns the owner's todo with the given id.
func (svc *TodoService) Get(ctx context.Context, owner string, id uuid.UUID) (*models.TodoDB, error) {
	todo, err := svc.reader.Get(ctx, owner, id)
	if err != nil {
		logger.Log.Errorw("failed to get todo", "owner", owner, "id", id, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Update applies a partial update to the owner's todo: only non-nil fields
// of the patch replace stored values. UpdatedAt is always refreshed.
func (svc *TodoService) Update(ctx context.Context, owner string, id uuid.UUID, patch models.TodoUpdate) (*models.TodoDB, error) {
	todo, err := svc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, ErrEmptyTitle
		}
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := svc.writer.Save(ctx, todo); err != nil {
		logger.Log.Errorw("failed to update todo", "owner", owner, "id", id, "error", err)
		return nil, err
	}

	svc.publish(ctx, models.TodoUpdated, todo)
	return todo, nil
}

// Delete removes the owner's todo with the given id.
func (svc *TodoService) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	deleted, err := svc.writer.Delete(ctx, owner, id)
	if err != nil {
		logger.Log.Errorw("failed to delete todo", "owner", owner, "id", id, "error", err)
		return err
	}
	if !deleted {
		return ErrTodoNotFound
	}

	svc.publish(ctx, models.TodoDeleted, &models.TodoDB{UserID: owner, TodoID: id})
	return nil
}

// publish emits a mutation event. The mutation is already durable, so a
// publish failure is logged and swallowed.
func (svc *TodoService) publish(ctx context.Context, action string, todo *models.TodoDB) {
	if svc.publisher == nil {
		return
	}
	event := models.TodoEvent{
		Action: action,
		UserID: todo.UserID,
		TodoID: todo.TodoID,
		At:     time.Now().UTC(),
	}
	if err := svc.publisher.Publish(ctx, event); err != nil {
		logger.Log.Errorw("failed to publish todo event", "action", action, "owner", todo.UserID, "error", err)
	}
}
