package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/autoposter/internal/domain"
)

var ErrSlotNotFound = errors.New("slot not found")

// SlotStorage is a durable key/value slot store. Writes replace the whole value.
type SlotStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type CartRepository interface {
	// Load never fails: missing or malformed data yields an empty cart.
	Load(ctx context.Context) domain.Cart
	Save(ctx context.Context, cart domain.Cart) error
}
