package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/todo-api/internal/models"
)

const (
	keyList       = "todo:list"
	keyGeneration = "todo:list:gen"
)

// TodoCache keeps the public todo listing in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetAll returns the cached listing. The bool is false on a miss.
func (c *TodoCache) GetAll(ctx context.Context) ([]models.Todo, bool, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	list := []models.Todo{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Generation returns the invalidation counter. A listing read from the store
// after this call may be stored with SetAll under the returned value.
func (c *TodoCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetAll stores the listing unless an invalidation happened since generation
// was read. The check and the write run in one WATCH transaction.
func (c *TodoCache) SetAll(ctx context.Context, generation int64, list []models.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, keyGeneration).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyList, b, c.ttl)
			return nil
		})
		return err
	}, keyGeneration)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the listing after a write and bumps the generation so
// fills started before the write are discarded.
func (c *TodoCache) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, keyGeneration)
		pipe.Del(ctx, keyList)
		return nil
	})
	return err
}

// Connect opens a Redis client and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
