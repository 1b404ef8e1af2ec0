package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/avorobev/todo-service/internal/storage"
)

func setupRedisContainer(t *testing.T) (*storage.Storage, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "6379")

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port.Int()),
	})

	var pingErr error
	for i := 0; i < 10; i++ {
		if pingErr = rdb.Ping(context.Background()).Err(); pingErr == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, pingErr)

	teardown := func() {
		rdb.Close()
		container.Terminate(context.Background())
	}

	return storage.New(rdb), teardown
}

func TestUserRepository_SaveAndGet(t *testing.T) {
	store, teardown := setupRedisContainer(t)
	defer teardown()

	reader := NewUserReadRepository(store)
	writer := NewUserWriteRepository(store)
	ctx := context.Background()

	created, err := writer.Save(ctx, "alice", "$2a$12$fakehash")
	assert.NoError(t, err)
	assert.True(t, created)

	user, err := reader.GetByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$12$fakehash", user.HashedPassword)
}

func TestUserRepository_GetAbsent(t *testing.T) {
	store, teardown := setupRedisContainer(t)
	defer teardown()

	reader := NewUserReadRepository(store)

	user, err := reader.GetByUsername(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_SaveDuplicate(t *testing.T) {
	store, teardown := setupRedisContainer(t)
	defer teardown()

	writer := NewUserWriteRepository(store)
	reader := NewUserReadRepository(store)
	ctx := context.Background()

	created, err := writer.Save(ctx, "alice", "first-hash")
	assert.NoError(t, err)
	assert.True(t, created)

	// Second registration loses the conditional write and the original
	// record stays untouched.
	created, err = writer.Save(ctx, "alice", "second-hash")
	assert.NoError(t, err)
	assert.False(t, created)

	user, err := reader.GetByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "first-hash", user.HashedPassword)
}
