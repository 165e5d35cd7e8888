package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"taskboard/services/app/core"
)

const DefaultRedisPrefix = "taskboard:storage:"

// RedisStorage keeps items as plain Redis strings under a common prefix.
type RedisStorage struct {
	log    *slog.Logger
	client *redis.Client
	prefix string
}

func NewRedisStorage(log *slog.Logger, addr, password string, db int, prefix string) (*RedisStorage, error) {
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return &RedisStorage{log: log, client: client, prefix: prefix}, nil
}

func (s *RedisStorage) Close() error { return s.client.Close() }

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	s.log.Debug("redis item stored", "key", s.prefix+key)
	return nil
}

func (s *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	s.log.Debug("redis item removed", "key", s.prefix+key)
	return nil
}

var _ core.LocalStorage = (*RedisStorage)(nil)
