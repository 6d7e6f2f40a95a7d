package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtrackr/jobtrackr/internal/model"
)

// RedisStore keeps session snapshots and confirmation tokens in Redis with a
// TTL, so idle sessions expire without any sweeper.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(token string) string { return "session:" + token }
func confirmKey(token string) string { return "confirm:" + token }

func (s *RedisStore) Save(ctx context.Context, token string, profile model.UserProfile, ttl time.Duration) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(token), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*model.UserProfile, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	var profile model.UserProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &profile, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

func (s *RedisStore) SaveConfirmToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, confirmKey(token), userID, ttl).Err()
}

// TakeConfirmToken redeems a confirmation token. Single use: the key is
// deleted on read. An unknown token yields ("", nil).
func (s *RedisStore) TakeConfirmToken(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, confirmKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("confirm token lookup: %w", err)
	}
	return userID, nil
}
