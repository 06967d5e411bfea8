package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/autoposter/internal/port"
)

type memorySlots struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemorySlots() port.SlotStorage {
	return &memorySlots{values: make(map[string][]byte)}
}

func (s *memorySlots) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, port.ErrSlotNotFound
	}

	return slices.Clone(value), nil
}

func (s *memorySlots) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = slices.Clone(value)

	return nil
}
