package repositories

import (
	"context"
	"encoding/json"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/models"
	"github.com/avorobev/todo-service/internal/storage"
)

// UserReadRepository reads user records from the store.
type UserReadRepository struct {
	store *storage.Storage
}

func NewUserReadRepository(store *storage.Storage) *UserReadRepository {
	return &UserReadRepository{store: store}
}

// GetByUsername returns the user record, or nil if no such user exists.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	raw, err := r.store.GetItem(ctx, storage.UserTable, username, "")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var user models.UserDB
	if err := json.Unmarshal(raw, &user); err != nil {
		logger.Log.Errorw("failed to decode user record", "username", username, "error", err)
		return nil, err
	}
	if err := user.Validate(); err != nil {
		logger.Log.Errorw("invalid user record in store", "username", username, "error", err)
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository writes user records to the store.
type UserWriteRepository struct {
	store *storage.Storage
}

func NewUserWriteRepository(store *storage.Storage) *UserWriteRepository {
	return &UserWriteRepository{store: store}
}

// Save stores a new user with a conditional write. Reports false when the
// username is already taken, which keeps concurrent registrations from
// silently overwriting each other.
func (r *UserWriteRepository) Save(ctx context.Context, username, hashedPassword string) (bool, error) {
	raw, err := json.Marshal(models.UserDB{
		Username:       username,
		HashedPassword: hashedPassword,
	})
	if err != nil {
		return false, err
	}

	created, err := r.store.PutItemNX(ctx, storage.UserTable, username, "", raw)

	logger.Log.Infow("user save",
		"username", username,
		"created", created,
		"error", err,
	)

	return created, err
}
