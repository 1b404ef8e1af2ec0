package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/storage"
)

// TodoReadRepository reads todo records from the store. Every lookup is
// keyed by (owner, id), so one owner's items are unreachable from another
// owner's queries.
type TodoReadRepository struct {
	store *storage.Storage
}

func NewTodoReadRepository(store *storage.Storage) *TodoReadRepository {
	return &TodoReadRepository{store: store}
}

// Get returns the todo with the given owner and id, or nil if absent.
func (r *TodoReadRepository) Get(ctx context.Context, owner string, id uuid.UUID) (*models.TodoDB, error) {
	raw, err := r.store.GetItem(ctx, storage.TodoTable, owner, id.String())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	todo, err := decodeTodo(raw)
	if err != nil {
		logger.Log.Errorw("invalid todo record in store", "owner", owner, "id", id, "error", err)
		return nil, err
	}
	return todo, nil
}

// List returns all todos of the owner. Order within the partition is
// unspecified. Invalid records are skipped, not fatal for the whole list.
func (r *TodoReadRepository) List(ctx context.Context, owner string) ([]models.TodoDB, error) {
	raws, err := r.store.QueryItems(ctx, storage.TodoTable, owner)
	if err != nil {
		return nil, err
	}

	todos := make([]models.TodoDB, 0, len(raws))
	for _, raw := range raws {
		todo, err := decodeTodo(raw)
		if err != nil {
			logger.Log.Errorw("skipping invalid todo record", "owner", owner, "error", err)
			continue
		}
		todos = append(todos, *todo)
	}
	return todos, nil
}

func decodeTodo(raw []byte) (*models.TodoDB, error) {
	var todo models.TodoDB
	if err := json.Unmarshal(raw, &todo); err != nil {
		return nil, err
	}
	if err := todo.Validate(); err != nil {
		return nil, err
	}
	return &todo, nil
}

// TodoWriteRepository writes todo records to the store.
type TodoWriteRepository struct {
	store *storage.Storage
}

func NewTodoWriteRepository(store *storage.Storage) *TodoWriteRepository {
	return &TodoWriteRepository{store: store}
}

// Save stores the todo under (owner, id), overwriting any previous value.
func (r *TodoWriteRepository) Save(ctx context.Context, todo *models.TodoDB) error {
	raw, err := json.Marshal(todo)
	if err != nil {
		return err
	}

	err = r.store.PutItem(ctx, storage.TodoTable, todo.UserID, todo.TodoID.String(), raw)

	logger.Log.Infow("todo save",
		"owner", todo.UserID,
		"id", todo.TodoID,
		"error", err,
	)

	return err
}

// Delete removes the todo with the given owner and id. Reports whether an
// item was actually removed.
func (r *TodoWriteRepository) Delete(ctx context.Context, owner string, id uuid.UUID) (bool, error) {
	deleted, err := r.store.DeleteItem(ctx, storage.TodoTable, owner, id.String())

	logger.Log.Infow("todo delete",
		"owner", owner,
		"id", id,
		"deleted", deleted,
		"error", err,
	)

	return deleted, err
}
