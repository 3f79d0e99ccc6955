package fsm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "linguista:fsm:"

// RedisStore keeps sessions in Redis hashes
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore creates a store over client. Zero ttl keeps sessions forever.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(chatID int64) string {
	return redisKeyPrefix + strconv.FormatInt(chatID, 10)
}

// Get loads the chat's session, empty when none is stored
func (r *RedisStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	vals, err := r.client.HMGet(ctx, redisKey(chatID), "state", "data").Result()
	if errors.Is(err, redis.Nil) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	state, _ := vals[0].(string)
	data, _ := vals[1].(string)
	return decode(state, data)
}

// Set stores the chat's session
func (r *RedisStore) Set(ctx context.Context, chatID int64, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	key := redisKey(chatID)
	if err := r.client.HSet(ctx, key, "state", string(s.State), "data", data).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("expire session: %w", err)
		}
	}
	return nil
}

// Clear deletes the chat's session
func (r *RedisStore) Clear(ctx context.Context, chatID int64) error {
	if err := r.client.Del(ctx, redisKey(chatID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
