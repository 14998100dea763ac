package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/mooded/internal/constants"
)

// RedisStore keeps blobs as plain string values under a common key prefix
type RedisStore struct {
	url string
	rdb *redis.Client
}

func NewRedisStore(url string) *RedisStore {
	return &RedisStore{url: url}
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) connect() error {
	opts, err := redis.ParseURL(s.url)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyRequestTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	s.rdb = rdb
	return nil
}

func (s *RedisStore) Init() error {
	return s.Load()
}

func (s *RedisStore) Load() error {
	if s.rdb != nil {
		return nil
	}
	return s.connect()
}

func (s *RedisStore) Close() error {
	if s.rdb != nil {
		err := s.rdb.Close()
		s.rdb = nil
		return err
	}
	return nil
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	if s.rdb == nil {
		return nil, ErrNotLoaded
	}
	b, err := s.rdb.Get(context.Background(), constants.RedisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return b, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	if s.rdb == nil {
		return ErrNotLoaded
	}
	if err := s.rdb.Set(context.Background(), constants.RedisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set blob: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(key string) error {
	if s.rdb == nil {
		return ErrNotLoaded
	}
	if err := s.rdb.Del(context.Background(), constants.RedisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

func (s *RedisStore) Keys() ([]string, error) {
	if s.rdb == nil {
		return nil, ErrNotLoaded
	}

	ctx := context.Background()
	var keys []string
	iter := s.rdb.Scan(ctx, 0, constants.RedisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), constants.RedisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) GetConfigPath() string {
	return "redis"
}
