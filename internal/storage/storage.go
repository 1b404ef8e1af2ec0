package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avorobev/todo-service/internal/logger"
)

// Table names mirror the provisioned store tables.
const (
	UserTable = "user"
	TodoTable = "todo"
)

// Storage is a key-value item store over Redis. Items are addressed by a
// (partition key, sort key) pair within a table; the sort key may be empty
// for single-item partitions. Values are opaque JSON documents.
//
// Each partition with sort keys maintains an index set so the partition can
// be queried without scanning the keyspace.
type Storage struct {
	rdb *redis.Client
}

// New creates a Storage backed by the given Redis client.
func New(rdb *redis.Client) *Storage {
	return &Storage{rdb: rdb}
}

// itemKey builds the Redis key for an item.
func itemKey(table, pk, sk string) string {
	if sk == "" {
		return fmt.Sprintf("%s:%s", table, pk)
	}
	return fmt.Sprintf("%s:%s:%s", table, pk, sk)
}

// indexKey builds the Redis key of the partition index set.
func indexKey(table, pk string) string {
	return fmt.Sprintf("idx:%s:%s", table, pk)
}

// GetItem fetches a single item. Returns (nil, nil) when the item is absent.
func (s *Storage) GetItem(ctx context.Context, table, pk, sk string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, itemKey(table, pk, sk)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("storage get failed", "table", table, "pk", pk, "sk", sk, "error", err)
		return nil, err
	}
	return val, nil
}

// PutItem writes an item, overwriting any previous value, and registers the
// sort key in the partition index.
func (s *Storage) PutItem(ctx context.Context, table, pk, sk string, value []byte) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, itemKey(table, pk, sk), value, 0)
	if sk != "" {
		pipe.SAdd(ctx, indexKey(table, pk), sk)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Errorw("storage put failed", "table", table, "pk", pk, "sk", sk, "error", err)
		return err
	}
	return nil
}

// PutItemNX writes an item only if it does not exist yet. Reports whether
// the write happened. This is the store's conditional-write primitive and
// makes create-if-absent atomic.
func (s *Storage) PutItemNX(ctx context.Context, table, pk, sk string, value []byte) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, itemKey(table, pk, sk), value, 0).Result()
	if err != nil {
		logger.Log.Errorw("storage conditional put failed", "table", table, "pk", pk, "sk", sk, "error", err)
		return false, err
	}
	if ok && sk != "" {
		if err := s.rdb.SAdd(ctx, indexKey(table, pk), sk).Err(); err != nil {
			logger.Log.Errorw("storage index update failed", "table", table, "pk", pk, "sk", sk, "error", err)
			return false, err
		}
	}
	return ok, nil
}

// DeleteItem removes an item and its index entry. Reports whether the item
// existed, so repeated deletes of the same key stay distinguishable.
func (s *Storage) DeleteItem(ctx context.Context, table, pk, sk string) (bool, error) {
	pipe := s.rdb.TxPipeline()
	del := pipe.Del(ctx, itemKey(table, pk, sk))
	if sk != "" {
		pipe.SRem(ctx, indexKey(table, pk), sk)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Errorw("storage delete failed", "table", table, "pk", pk, "sk", sk, "error", err)
		return false, err
	}
	return del.Val() > 0, nil
}

// QueryItems returns all items of a partition, in no particular order.
func (s *Storage) QueryItems(ctx context.Context, table, pk string) ([][]byte, error) {
	sks, err := s.rdb.SMembers(ctx, indexKey(table, pk)).Result()
	if err != nil {
		logger.Log.Errorw("storage query failed", "table", table, "pk", pk, "error", err)
		return nil, err
	}
	if len(sks) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(sks))
	for _, sk := range sks {
		keys = append(keys, itemKey(table, pk, sk))
	}

	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Log.Errorw("storage query fetch failed", "table", table, "pk", pk, "error", err)
		return nil, err
	}

	items := make([][]byte, 0, len(vals))
	for _, v := range vals {
		// Index entries can outlive their item if a delete raced; skip holes.
		str, ok := v.(string)
		if !ok {
			continue
		}
		items = append(items, []byte(str))
	}
	return items, nil
}
