package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/autoposter/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisSlots struct {
	client *redis.Client
}

// NewRedisSlots stores slots without expiry.
func NewRedisSlots(client *redis.Client) port.SlotStorage {
	return &redisSlots{client: client}
}

func (s *redisSlots) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	value, err := s.client.Get(ctx, slotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get: %w", err)
	}

	return value, nil
}

func (s *redisSlots) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := s.client.Set(ctx, slotKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func slotKey(key string) string {
	return fmt.Sprintf("slot:%s", key)
}
